// Package response writes structured JSON responses. Every expected failure
// maps to a stable machine-readable code.
package response

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeRateLimit         = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeRoomNotFound      = "ROOM_NOT_FOUND"
	CodeInvalidTimeFormat = "INVALID_TIME_FORMAT"
	CodeTimeConflict      = "TIME_CONFLICT"
	CodeNoReservations    = "NO_RESERVATIONS"
	CodeLoginExists       = "LOGIN_EXISTS"
	CodeEmailExists       = "EMAIL_EXISTS"
	CodeUnknownLogin      = "UNKNOWN_LOGIN"
	CodeBadCredentials    = "BAD_CREDENTIALS"
)

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message, CodeConflict)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func RateLimit(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message, CodeRateLimit)
}
