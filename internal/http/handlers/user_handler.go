package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coworkly/spaces-api/internal/domain"
	"github.com/coworkly/spaces-api/internal/http/response"
)

// Register creates a new principal.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	user, err := h.users.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, user)
}

// Login verifies a principal's secret and returns a fresh access credential.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	resp, err := h.users.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, resp)
}
