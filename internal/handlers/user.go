package handlers

import (
	"log/slog"
	"net/http"

	"github.com/esterlin12/tvplus/internal/middleware"
	"github.com/esterlin12/tvplus/internal/service"
	"github.com/go-chi/chi/v5"
)

// ==========================
// UserHandler (admin)
// ==========================
type UserHandler struct {
	Users  *service.UserService
	Logger *slog.Logger
}

// ==========================
// Make Super User
// ==========================
func (h *UserHandler) MakeSuper(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.UserFromContext(r.Context())

	if err := h.Users.PromoteToSuper(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User promoted to super user"})
}

// ==========================
// List Users
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.ListAll(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
