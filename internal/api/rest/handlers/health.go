package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/CameronXie/ecommerce-backend/internal/api/rest/response"
)

const healthTimeout = 2 * time.Second

// Pinger checks that a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the database is reachable
type HealthHandler struct {
	db     Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// ServeHTTP handles GET /health
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorContext(r.Context(), "health_check_failed", "error", err)
		response.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}

	response.JSONResponse(w, http.StatusOK, map[string]string{"status": "UP"})
}
