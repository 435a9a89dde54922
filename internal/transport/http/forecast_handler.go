package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"olivepulse/internal/errors"
	"olivepulse/pkg/contracts/domain"
)

// ForecastService is the pipeline contract the handler depends on.
type ForecastService interface {
	GetForecast(ctx context.Context) (*domain.ForecastResponse, error)
}

// ForecastHandler serves the forecasting endpoint.
type ForecastHandler struct {
	service      ForecastService
	errorHandler *errors.ErrorHandler
	logger       *slog.Logger
}

// NewForecastHandler creates a forecast handler
func NewForecastHandler(service ForecastService, logger *slog.Logger) *ForecastHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ForecastHandler{
		service:      service,
		errorHandler: errors.NewErrorHandler(logger),
		logger:       logger.With(slog.String("handler", "forecast")),
	}
}

// Routes returns the router for forecast endpoints
func (h *ForecastHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/olive-forecasting", h.GetForecast)
	return r
}

// GetForecast handles GET /api/olive-forecasting. The operation takes no
// parameters; the whole pipeline runs per request.
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.GetForecast(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, response)
}
