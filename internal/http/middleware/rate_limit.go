package middleware

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/coworkly/spaces-api/internal/http/response"
)

// RateLimiter applies a fixed-window per-client limit backed by Redis,
// keyed by client IP and request path. Redis errors fail open.
type RateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
}

func NewRateLimiter(client *redis.Client, requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, requests: requests, window: window}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.key(r)
		if !rl.allow(r.Context(), key) {
			response.RateLimit(w, "Too many requests. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) key(r *http.Request) string {
	// Hash the key for privacy
	hasher := sha256.New()
	hasher.Write([]byte(clientIP(r) + "|" + r.URL.Path))
	return fmt.Sprintf("ratelimit:%x", hasher.Sum(nil))
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		rl.client.Expire(ctx, key, rl.window)
	}
	return count <= int64(rl.requests)
}

// clientIP extracts the real client IP from the request
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
