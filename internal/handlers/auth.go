package handlers

import (
	"log/slog"
	"net/http"

	"github.com/esterlin12/tvplus/internal/middleware"
	"github.com/esterlin12/tvplus/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users  *service.UserService
	Logger *slog.Logger
}

// ==========================
// Register
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	user, err := h.Users.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !decodeBody(w, r, &input) {
		return
	}

	result, err := h.Users.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ==========================
// Me
// ==========================
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
