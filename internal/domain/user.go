package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// User is a registered login identity. The secret is stored only as its
// argon2id hash; the login name and that hash are the sole basis for later
// credential issuance and verification.
type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

const MinPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_+-]+@[A-Za-z]{5,15}\.[A-Za-z]{2,}$`)

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (r *RegisterRequest) Normalize() {
	r.Login = strings.TrimSpace(r.Login)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Validate() error {
	if r.Login == "" {
		return fmt.Errorf("%w: login is required", ErrInvalidInput)
	}
	if len(r.Password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("%w: email format must be like example@example.com", ErrInvalidInput)
	}
	return nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Login = strings.TrimSpace(r.Login)
}

// LoginResponse carries a freshly issued access credential.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
