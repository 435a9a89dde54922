package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"olivepulse/internal/services"
)

// HealthHandler serves the health endpoints.
type HealthHandler struct {
	service *services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a health handler
func NewHealthHandler(service *services.HealthService, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the router for health endpoints
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Readiness)
	r.Get("/live", h.Liveness)
	r.Get("/ready", h.Readiness)
	return r
}

// Liveness handles GET /api/health/live
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Liveness(r.Context()))
}

// Readiness handles GET /api/health and /api/health/ready. A missing dataset
// file degrades readiness with a 503.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	status := h.service.Readiness(r.Context())
	if status.Status != "healthy" {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, status)
}
