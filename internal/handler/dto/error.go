package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskit-app/taskit/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code, message and optional field-level detail.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewValidationErrorResponse creates a validation error response with
// per-field detail.
func NewValidationErrorResponse(fields map[string]string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Fields:  fields,
		},
	}
}

// MapDomainError maps domain errors to an HTTP status and response body.
// Storage failures and anything unrecognized collapse to a generic 500
// so no internal detail leaks to the client.
func MapDomainError(err error) (int, ErrorResponse) {
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return http.StatusUnprocessableEntity, NewValidationErrorResponse(map[string]string{
			fieldErr.Field: fieldErr.Message,
		})
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, NewErrorResponse("VALIDATION_ERROR", err.Error())

	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, NewErrorResponse("TASK_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrNotificationNotFound):
		return http.StatusNotFound, NewErrorResponse("NOTIFICATION_NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, NewErrorResponse("USER_NOT_FOUND", err.Error())

	case errors.Is(err, domain.ErrNotNotificationOwner):
		return http.StatusForbidden, NewErrorResponse("INSUFFICIENT_ACCESS", err.Error())

	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, NewErrorResponse("INVALID_TOKEN", err.Error())

	default:
		slog.Error("unmapped error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, NewErrorResponse("INTERNAL_ERROR", "Internal server error")
	}
}
