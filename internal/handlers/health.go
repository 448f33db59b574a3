package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/esterlin12/tvplus/internal/models"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	DB *sql.DB
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Live Streaming Platform API"})
}

// Health reports liveness only; it never touches the database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": models.Now(),
	})
}

// Ready answers 503 until the database answers a ping.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.DB == nil || h.DB.PingContext(ctx) != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
