package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/repository"
	"github.com/coworkly/spaces-api/pkg/events"
	"github.com/coworkly/spaces-api/pkg/logger"
)

// ReservationService is the sole authority for accepting or rejecting a
// booking request and for reporting existing bookings.
type ReservationService interface {
	Reserve(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	Remove(ctx context.Context, id int64) error
}

type reservationService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	publisher       events.Publisher

	// The conflict check is read-then-write across two repository calls, so
	// concurrent bookings for the same room must be serialized or both can
	// pass the check before either persists.
	locksMu   sync.Mutex
	roomLocks map[int64]*sync.Mutex
}

func NewReservationService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	publisher events.Publisher,
) ReservationService {
	return &reservationService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
		roomLocks:       make(map[int64]*sync.Mutex),
	}
}

func (s *reservationService) Reserve(ctx context.Context, req *domain.CreateReservationRequest) (*domain.Reservation, error) {
	room, err := s.roomRepo.FindByID(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}

	requested, err := domain.ParseScheduledTime(req.ScheduledTime)
	if err != nil {
		return nil, err
	}

	lock := s.roomLock(room.ID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.reservationRepo.FindByRoomID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}

	for _, res := range existing {
		stored, err := domain.ParseScheduledTime(res.ScheduledTime)
		if err != nil {
			return nil, fmt.Errorf("stored reservation %d has unparsable time %q: %w", res.ID, res.ScheduledTime, err)
		}
		if domain.MinuteDistance(stored, requested) < domain.MinSeparationMinutes {
			return nil, domain.ErrTimeConflict
		}
	}

	created, err := s.reservationRepo.Create(ctx, &domain.Reservation{
		RoomID:        room.ID,
		Responsible:   req.Responsible,
		RoomCode:      room.Code,
		ScheduledTime: req.ScheduledTime,
		Status:        domain.RoomOccupied,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	// The booking is committed. Announce it without tying the outcome to the
	// caller: a publish failure is logged, never surfaced.
	go s.announce(context.WithoutCancel(ctx), created)

	return created, nil
}

func (s *reservationService) announce(ctx context.Context, res *domain.Reservation) {
	event := events.ReservationCreatedEvent{
		ReservationID: res.ID,
		RoomID:        res.RoomID,
		RoomCode:      res.RoomCode,
		Responsible:   res.Responsible,
		ScheduledTime: res.ScheduledTime,
		CreatedAt:     res.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, events.ReservationCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish reservation created event",
			"error", err, "reservation_id", res.ID)
	}
}

// List returns every stored reservation. An empty ledger is reported as
// domain.ErrNoReservations, a distinct condition rather than an empty
// success payload.
func (s *reservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	reservations, err := s.reservationRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	if len(reservations) == 0 {
		return nil, domain.ErrNoReservations
	}
	return reservations, nil
}

// Remove deletes a reservation by id. Deleting an absent id is not an error.
func (s *reservationService) Remove(ctx context.Context, id int64) error {
	if err := s.reservationRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (s *reservationService) roomLock(roomID int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}
