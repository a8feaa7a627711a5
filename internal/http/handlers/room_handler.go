package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/http/response"
)

// ListRooms returns every registered room.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.rooms.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if rooms == nil {
		rooms = []domain.Room{}
	}
	response.WriteJSON(w, http.StatusOK, rooms)
}

// CreateRoom registers a new room; it always starts available.
func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	room, err := h.rooms.Add(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, room)
}

// GetRoom looks a room up by id.
func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid room id")
		return
	}

	room, err := h.rooms.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, room)
}

// DeleteRoom removes a room by id. Removing an absent id succeeds.
func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid room id")
		return
	}

	if err := h.rooms.Remove(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "room removed"})
}
