// Package handlers maps HTTP requests onto the room, reservation and user
// services.
package handlers

import (
	"errors"
	"net/http"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/http/response"
	"github.com/coworkly/spaces-api/internal/service"
	"github.com/coworkly/spaces-api/pkg/logger"
)

type Handlers struct {
	rooms        service.RoomService
	reservations service.ReservationService
	users        service.UserService
}

func New(rooms service.RoomService, reservations service.ReservationService, users service.UserService) *Handlers {
	return &Handlers{
		rooms:        rooms,
		reservations: reservations,
		users:        users,
	}
}

// writeServiceError translates the expected domain failures into their
// stable status/code pairs. Anything else is an unexpected collaborator
// fault and surfaces as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		response.WriteError(w, http.StatusNotFound, err.Error(), response.CodeRoomNotFound)
	case errors.Is(err, domain.ErrInvalidTimeFormat):
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeInvalidTimeFormat)
	case errors.Is(err, domain.ErrTimeConflict):
		response.WriteError(w, http.StatusConflict, err.Error(), response.CodeTimeConflict)
	case errors.Is(err, domain.ErrNoReservations):
		response.WriteError(w, http.StatusNotFound, err.Error(), response.CodeNoReservations)
	case errors.Is(err, domain.ErrInvalidInput):
		response.BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrDuplicateLogin):
		response.WriteError(w, http.StatusConflict, err.Error(), response.CodeLoginExists)
	case errors.Is(err, domain.ErrDuplicateEmail):
		response.WriteError(w, http.StatusConflict, err.Error(), response.CodeEmailExists)
	case errors.Is(err, domain.ErrUnknownLogin):
		response.WriteError(w, http.StatusNotFound, err.Error(), response.CodeUnknownLogin)
	case errors.Is(err, domain.ErrAuthentication):
		response.WriteError(w, http.StatusUnauthorized, err.Error(), response.CodeBadCredentials)
	default:
		logger.ErrorContext(r.Context(), "Unexpected service error", "error", err,
			"method", r.Method, "path", r.URL.Path)
		response.InternalError(w, "internal error")
	}
}
