package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"olivepulse/internal/infrastructure"
)

// MetricsHandler exposes the Prometheus scrape endpoint backed by the
// OpenTelemetry meter provider.
type MetricsHandler struct {
	providers *infrastructure.OTelProviders
}

// NewMetricsHandler creates a metrics handler
func NewMetricsHandler(providers *infrastructure.OTelProviders) *MetricsHandler {
	return &MetricsHandler{providers: providers}
}

// Routes returns the router for the metrics endpoint
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Metrics)
	return r
}

// Metrics handles GET /api/metrics
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.providers == nil || h.providers.PrometheusHTTP == nil {
		http.Error(w, "metrics not enabled", http.StatusNotFound)
		return
	}
	h.providers.PrometheusHTTP.ServeHTTP(w, r)
}
