// Package auth issues and verifies the signed access credentials that gate
// protected operations. Credentials are HS256 JWTs binding a subject (the
// login name), an issued-at instant, and an expiration instant. They are
// never persisted: validity is decided purely by re-verifying the signature
// and expiration at each use.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredential is returned when a token is malformed, carries a bad
// signature, or its claims cannot be decoded. Verification fails closed.
var ErrInvalidCredential = errors.New("invalid credential")

type Claims struct {
	jwt.RegisteredClaims
}

// Service mints and verifies access credentials with a signing key fixed for
// the process lifetime.
type Service struct {
	secret []byte
	ttl    time.Duration

	// now is swapped in tests to drive expiration.
	now func() time.Time
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL reports the configured credential lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue produces a credential for the given login name, issued now and
// expiring after the configured duration. Stateless: nothing is recorded.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse decodes and signature-checks a credential, returning its claims.
// Any signature mismatch or malformed token yields ErrInvalidCredential.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidCredential
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidCredential
	}
	return claims, nil
}

// Verify reports whether the credential is signed by this service, names the
// expected subject, and has not expired.
func (s *Service) Verify(tokenString, expectedSubject string) bool {
	claims, err := s.Parse(tokenString)
	if err != nil {
		return false
	}
	if claims.Subject != expectedSubject {
		return false
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Before(s.now()) {
		return false
	}
	return true
}
