package service

import (
	"context"
	"fmt"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/repository"
)

// RoomService exposes the administrative room operations.
type RoomService interface {
	List(ctx context.Context) ([]domain.Room, error)
	Add(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	Remove(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Room, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) List(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// Add registers a new room. Status always starts as available regardless of
// the request.
func (s *roomService) Add(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	room, err := s.roomRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

// Remove deletes a room by id. Absent ids are not an error.
func (s *roomService) Remove(ctx context.Context, id int64) error {
	if err := s.roomRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	return nil
}

func (s *roomService) FindByID(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up room: %w", err)
	}
	if room == nil {
		return nil, domain.ErrRoomNotFound
	}
	return room, nil
}
