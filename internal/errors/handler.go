package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"olivepulse/internal/middleware"
)

// ErrorHandler provides centralized error handling for HTTP handlers. Any
// error funneled through it is logged with request context and rendered as
// the {"error": <message>} contract body with an appropriate status code.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError logs the error and writes the error response
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetRequestID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("remote_addr", r.RemoteAddr),
	)

	apiErr := h.toAPIError(err)
	if renderErr := render.Render(w, r, apiErr); renderErr != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error response",
			slog.String("error", renderErr.Error()))
	}
}

// toAPIError maps application errors onto HTTP statuses. The source table
// being unreadable is a 503 (the backing data may reappear), a schema
// violation is a 422, anything unrecognized is a 500.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusGatewayTimeout, "TIMEOUT", "request cancelled or timed out")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrTypeSource:
			return New(http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE", appErr.Error())
		case ErrTypeSchema:
			return New(http.StatusUnprocessableEntity, "SCHEMA_ERROR", appErr.Error())
		case ErrTypeValidation:
			return New(http.StatusBadRequest, "VALIDATION_FAILED", appErr.Error())
		case ErrTypeNotFound:
			return New(http.StatusNotFound, "NOT_FOUND", appErr.Error())
		}
	}

	return New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", err.Error())
}
