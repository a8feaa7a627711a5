package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/http/response"
)

// CreateReservation books a room slot for a responsible party.
func (h *Handlers) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	reservation, err := h.reservations.Reserve(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, reservation)
}

// ListReservations returns every stored reservation. An empty ledger is a
// distinct 404 condition, not an empty list.
func (h *Handlers) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, reservations)
}

// DeleteReservation removes a reservation by id, idempotently.
func (h *Handlers) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid reservation id")
		return
	}

	if err := h.reservations.Remove(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "reservation removed"})
}
