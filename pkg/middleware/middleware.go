package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/coworkly/spaces-api/pkg/logger"
)

// RequestID adds a unique request ID to each request
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging logs HTTP requests with structured logging
func Logging(next http.Handler) http.Handler {
	return middleware.RequestLogger(&StructuredLogger{})(next)
}

type StructuredLogger struct{}

func (l *StructuredLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	return &StructuredLogEntry{
		request: r,
		start:   time.Now(),
	}
}

type StructuredLogEntry struct {
	request *http.Request
	start   time.Time
}

func (l *StructuredLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	logger.InfoContext(l.request.Context(), "HTTP request completed",
		"method", l.request.Method,
		"path", l.request.URL.Path,
		"status", status,
		"bytes", bytes,
		"elapsed_ms", elapsed.Milliseconds(),
		"user_agent", l.request.UserAgent(),
		"remote_addr", l.request.RemoteAddr,
	)
}

func (l *StructuredLogEntry) Panic(v interface{}, stack []byte) {
	logger.ErrorContext(l.request.Context(), "HTTP request panic",
		"panic", v,
		"stack", string(stack),
		"method", l.request.Method,
		"path", l.request.URL.Path,
	)
}

// ServiceName adds service name to context for logging
func ServiceName(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), logger.ServiceKey, name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Health provides health check endpoint
func Health(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
