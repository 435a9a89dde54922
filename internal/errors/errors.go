package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// ErrorType classifies application errors for logging and HTTP mapping.
type ErrorType string

const (
	ErrTypeSource     ErrorType = "SOURCE"
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewSourceError reports a backing table that cannot be loaded. Fatal for the
// request.
func NewSourceError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSource, message, cause)
}

// NewSchemaError reports a required column missing after header
// normalization. Fatal for the request.
func NewSchemaError(message string) *AppError {
	return NewAppError(ErrTypeSchema, message, nil)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// APIError is a structured API error. Only the message crosses the wire; the
// response body is {"error": <message>}, which is the contract the dashboard
// frontend expects.
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"-"`
	Message    string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest     = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound           = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer     = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
)
