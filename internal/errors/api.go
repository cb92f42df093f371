package errors

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
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

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrNotFound         = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrInternalServer   = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrUpstreamFetch    = New(http.StatusBadGateway, "UPSTREAM_FETCH_FAILED", "Auction data fetch failed")
)

// FromDomain maps a pipeline error onto the API taxonomy. Malformed records,
// unknown tenors and invalid ranges are all caller-visible input problems;
// anything else is an internal failure.
func FromDomain(err error) *APIError {
	var malformed *MalformedRecordError
	var tenor *UnknownTenorError
	var badRange *InvalidRangeError
	switch {
	case errors.As(err, &badRange):
		return NewWithDetails(http.StatusBadRequest, "INVALID_RANGE", "End date precedes start date", err.Error())
	case errors.As(err, &malformed):
		return NewWithDetails(http.StatusUnprocessableEntity, "MALFORMED_RECORD", "Auction record could not be parsed", err.Error())
	case errors.As(err, &tenor):
		return NewWithDetails(http.StatusUnprocessableEntity, "UNKNOWN_TENOR", "Security term outside the tenor enumeration", err.Error())
	default:
		return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error", err.Error())
	}
}
