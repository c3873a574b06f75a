// errors.go - Structured error handling for API responses
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dupe-arranger/internal/model"

	"github.com/labstack/echo/v4"
)

// APIError represents a structured API error response
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, cause error) *APIError {
	return withCause(&APIError{
		Status:  http.StatusBadRequest,
		Code:    "BAD_REQUEST",
		Message: message,
	}, cause)
}

// NewValidationError creates a 400 error for a rejected naming or arrangement config
func NewValidationError(cause error) *APIError {
	return withCause(&APIError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "invalid configuration",
	}, cause)
}

// NewCountMismatchError creates a 422 error for a count the grid cannot hold
func NewCountMismatchError(cause error) *APIError {
	return withCause(&APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "COUNT_MISMATCH",
		Message: "count does not match grid size",
	}, cause)
}

// NewInternalError creates a 500 Internal Server Error
func NewInternalError(message string, cause error) *APIError {
	return withCause(&APIError{
		Status:  http.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: message,
	}, cause)
}

func withCause(e *APIError, cause error) *APIError {
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// fromEngine maps an engine or job error onto the matching API error.
func fromEngine(err error) *APIError {
	switch {
	case errors.Is(err, model.ErrCountMismatch):
		return NewCountMismatchError(err)
	case errors.Is(err, model.ErrInvalidConfiguration):
		return NewValidationError(err)
	default:
		return NewInternalError("build failed", err)
	}
}

// ErrorHandler renders every error as an APIError.
// Usage: e.HTTPErrorHandler = api.ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &httpErr):
		apiErr = &APIError{
			Status:  httpErr.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		apiErr = &APIError{
			Status:  http.StatusInternalServerError,
			Code:    "UNKNOWN_ERROR",
			Message: "An unexpected error occurred",
			Details: err.Error(),
		}
	}

	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"code", apiErr.Code,
			"error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(apiErr.Status)
		return
	}
	_ = c.JSON(apiErr.Status, apiErr)
}
