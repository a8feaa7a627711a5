package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coworkly/spaces-api/internal/domain"
)

// RoomRepository is the room registry: room records and their availability.
// FindByID returns (nil, nil) when the room does not exist.
type RoomRepository interface {
	Create(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error)
	FindByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	DeleteByID(ctx context.Context, id int64) error
}

type roomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomCols = `id, area, code, capacity, location, status`

func (r *roomRepository) Create(ctx context.Context, req *domain.CreateRoomRequest) (*domain.Room, error) {
	const q = `INSERT INTO rooms (area, code, capacity, location, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + roomCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var room domain.Room
	err := r.pool.QueryRow(ctx, q, req.Area, req.Code, req.Capacity, req.Location, domain.RoomAvailable).Scan(
		&room.ID, &room.Area, &room.Code, &room.Capacity, &room.Location, &room.Status,
	)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByID(ctx context.Context, id int64) (*domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var room domain.Room
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&room.ID, &room.Area, &room.Code, &room.Capacity, &room.Location, &room.Status,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	const q = `SELECT ` + roomCols + ` FROM rooms ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Area, &room.Code, &room.Capacity, &room.Location, &room.Status); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM rooms WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, id)
	return err
}
