package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coworkly/spaces-api/internal/domain"
)

// UserRepository is the principal store. Lookups return (nil, nil) when no
// principal matches.
type UserRepository interface {
	Create(ctx context.Context, login, email, passwordHash string) (*domain.User, error)
	FindByLogin(ctx context.Context, login string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userCols = `id, login, email, password_hash`

func (r *userRepository) Create(ctx context.Context, login, email, passwordHash string) (*domain.User, error) {
	const q = `INSERT INTO users (login, email, password_hash)
VALUES ($1,$2,$3)
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, login, email, passwordHash).Scan(
		&u.ID, &u.Login, &u.Email, &u.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByLogin(ctx context.Context, login string) (*domain.User, error) {
	return r.findBy(ctx, `SELECT `+userCols+` FROM users WHERE login=$1`, login)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findBy(ctx, `SELECT `+userCols+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) findBy(ctx context.Context, q, arg string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u domain.User
	err := r.pool.QueryRow(ctx, q, arg).Scan(&u.ID, &u.Login, &u.Email, &u.PasswordHash)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
