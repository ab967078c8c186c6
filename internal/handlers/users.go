package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/freshchat-app/freshchat-backend/internal/services"
)

// UserHandler exposes the user registry over HTTP.
type UserHandler struct {
	Users *services.UserService
}

type registerRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required"`
	Avatar string `json:"avatar,omitempty"`
	About  string `json:"about,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// Register creates a user, rejecting duplicate emails.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}

	user, err := h.Users.Register(r.Context(), &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
		About:  req.About,
		Phone:  req.Phone,
	})
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid email format")
	case errors.Is(err, services.ErrConflict):
		writeError(w, http.StatusBadRequest, "User with this email already exists")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to register user")
	default:
		writeJSON(w, http.StatusOK, user)
	}
}

// List returns all registered users, optionally filtered with ?search=.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}
