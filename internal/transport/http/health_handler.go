package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"votecompare/internal/services"
)

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/health. A server without a dataset answers
// 503 so load balancers hold traffic until the first load succeeds.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := h.service.HealthCheck(r.Context())
	if status.Dataset == nil {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}
