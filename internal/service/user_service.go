package service

import (
	"context"
	"fmt"

	"github.com/alexedwards/argon2id"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/repository"
	"github.com/coworkly/spaces-api/pkg/auth"
)

// PasswordHasher is the secret hashing collaborator. Plaintext secrets are
// hashed at registration and compared at login; they are never stored.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) (bool, error)
}

// Argon2Hasher hashes secrets with argon2id.
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext, argon2id.DefaultParams)
}

func (Argon2Hasher) Compare(plaintext, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plaintext, hash)
}

// UserService handles principal registration and credential issuance.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
}

type userService struct {
	userRepo    repository.UserRepository
	hasher      PasswordHasher
	credentials *auth.Service
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, credentials *auth.Service) UserService {
	return &userService{
		userRepo:    userRepo,
		hasher:      hasher,
		credentials: credentials,
	}
}

// Register creates a new principal. The login uniqueness check runs before
// the email check, so when both collide the duplicate login is reported.
func (s *userService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing login: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateLogin
	}

	existing, err = s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Login, req.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the supplied secret against the stored hash and issues a
// fresh access credential bound to the login.
func (s *userService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	req.Normalize()

	user, err := s.userRepo.FindByLogin(ctx, req.Login)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnknownLogin
	}

	valid, err := s.hasher.Compare(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrAuthentication
	}

	token, err := s.credentials.Issue(user.Login)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credential: %w", err)
	}

	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.credentials.TTL().Seconds()),
	}, nil
}
