package service_test

import (
	"context"
	"sync"

	"github.com/coworkly/spaces-api/internal/domain"
)

// ---------- Mocks ----------

type mockRoomRepo struct {
	mu     sync.Mutex
	nextID int64
	rooms  map[int64]*domain.Room

	findErr error
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{nextID: 1, rooms: make(map[int64]*domain.Room)}
}

func (m *mockRoomRepo) add(area, code string, capacity int64, location string) *domain.Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	room := &domain.Room{
		ID:       m.nextID,
		Area:     area,
		Code:     code,
		Capacity: capacity,
		Location: location,
		Status:   domain.RoomAvailable,
	}
	m.rooms[room.ID] = room
	m.nextID++
	return room
}

func (m *mockRoomRepo) Create(_ context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	return m.add(req.Area, req.Code, req.Capacity, req.Location), nil
}

func (m *mockRoomRepo) FindByID(_ context.Context, id int64) (*domain.Room, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rooms[id], nil
}

func (m *mockRoomRepo) List(_ context.Context) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Room
	for id := int64(1); id < m.nextID; id++ {
		if room, ok := m.rooms[id]; ok {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (m *mockRoomRepo) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, id)
	return nil
}

type mockReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*domain.Reservation

	findByRoomCalls int
	createErr       error
}

func newMockReservationRepo() *mockReservationRepo {
	return &mockReservationRepo{nextID: 1, reservations: make(map[int64]*domain.Reservation)}
}

func (m *mockReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	stored := *res
	stored.ID = m.nextID
	m.reservations[stored.ID] = &stored
	m.nextID++
	out := stored
	return &out, nil
}

func (m *mockReservationRepo) FindByRoomID(_ context.Context, roomID int64) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findByRoomCalls++
	var out []domain.Reservation
	for id := int64(1); id < m.nextID; id++ {
		if res, ok := m.reservations[id]; ok && res.RoomID == roomID {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *mockReservationRepo) FindAll(_ context.Context) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Reservation
	for id := int64(1); id < m.nextID; id++ {
		if res, ok := m.reservations[id]; ok {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *mockReservationRepo) DeleteByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	return nil
}

type mockUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, login, email, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &domain.User{ID: m.nextID, Login: login, Email: email, PasswordHash: passwordHash}
	m.users[u.ID] = u
	m.nextID++
	return u, nil
}

func (m *mockUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Login == login {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// mockPublisher records published events and signals each publish on a
// channel so tests can wait for the fire-and-forget goroutine.
type mockPublisher struct {
	mu        sync.Mutex
	published []publishedEvent
	signal    chan struct{}
	err       error
}

type publishedEvent struct {
	subject string
	data    interface{}
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{signal: make(chan struct{}, 16)}
}

func (m *mockPublisher) Publish(_ context.Context, subject string, data interface{}) error {
	m.mu.Lock()
	m.published = append(m.published, publishedEvent{subject: subject, data: data})
	err := m.err
	m.mu.Unlock()
	m.signal <- struct{}{}
	return err
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) events() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]publishedEvent, len(m.published))
	copy(out, m.published)
	return out
}
