// Package middleware holds the request filters specific to this API: the
// authentication gate and the login rate limiter.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/coworkly/spaces-api/internal/http/response"
	"github.com/coworkly/spaces-api/internal/repository"
	"github.com/coworkly/spaces-api/pkg/auth"
	"github.com/coworkly/spaces-api/pkg/logger"
)

// RoleUser is the single role granted to every authenticated principal.
const RoleUser = "user"

// Identity is the authenticated caller for the remainder of a request. A
// request either carries no identity or exactly this; there is no way back
// to unauthenticated once established.
type Identity struct {
	Subject string
	Role    string
}

type ctxKey string

const identityKey ctxKey = "identity"

// IdentityFrom returns the identity established for this request, or nil.
func IdentityFrom(ctx context.Context) *Identity {
	v := ctx.Value(identityKey)
	if v == nil {
		return nil
	}
	return v.(*Identity)
}

// Gate converts an inbound bearer credential into an authenticated identity.
// It never hard-fails: any missing header, malformed token, unknown subject,
// or failed verification passes the request through unauthenticated, and the
// protected operation decides whether to reject.
type Gate struct {
	credentials *auth.Service
	users       repository.UserRepository
}

func NewGate(credentials *auth.Service, users repository.UserRepository) *Gate {
	return &Gate{credentials: credentials, users: users}
}

func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")

		claims, err := g.credentials.Parse(raw)
		if err != nil || claims.Subject == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		if IdentityFrom(ctx) != nil {
			next.ServeHTTP(w, r)
			return
		}

		user, err := g.users.FindByLogin(ctx, claims.Subject)
		if err != nil || user == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !g.credentials.Verify(raw, user.Login) {
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, identityKey, &Identity{Subject: user.Login, Role: RoleUser})
		ctx = context.WithValue(ctx, logger.LoginKey, user.Login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that reached a protected operation without an
// established identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			response.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
