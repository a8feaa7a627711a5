package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coworkly/spaces-api/internal/domain"
)

// ReservationRepository is the reservation ledger. Reservations are inserted
// once and deleted by id; they are never updated.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	FindByRoomID(ctx context.Context, roomID int64) ([]domain.Reservation, error)
	FindAll(ctx context.Context) ([]domain.Reservation, error)
	DeleteByID(ctx context.Context, id int64) error
}

type reservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) ReservationRepository {
	return &reservationRepository{pool: pool}
}

const reservationCols = `id, room_id, responsible, room_code, scheduled_time, status, created_at`

func (r *reservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	const q = `INSERT INTO reservations (room_id, responsible, room_code, scheduled_time, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + reservationCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var created domain.Reservation
	err := r.pool.QueryRow(ctx, q, res.RoomID, res.Responsible, res.RoomCode, res.ScheduledTime, res.Status).Scan(
		&created.ID, &created.RoomID, &created.Responsible, &created.RoomCode,
		&created.ScheduledTime, &created.Status, &created.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *reservationRepository) FindByRoomID(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations WHERE room_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]domain.Reservation, error) {
	const q = `SELECT ` + reservationCols + ` FROM reservations ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservations(rows)
}

func (r *reservationRepository) DeleteByID(ctx context.Context, id int64) error {
	const q = `DELETE FROM reservations WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, id)
	return err
}

func scanReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.Responsible, &res.RoomCode,
			&res.ScheduledTime, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
