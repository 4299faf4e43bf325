package domain

import (
	"errors"
	"fmt"
)

// Domain-specific errors for business logic validation.
var (
	// Not-found errors
	ErrTaskNotFound         = errors.New("task not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserNotFound         = errors.New("user not found")

	// Permission errors
	ErrNotNotificationOwner = errors.New("not notification recipient")

	// Validation errors (field-level detail carried by FieldError)
	ErrValidation      = errors.New("validation failed")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")

	// Auth errors
	ErrInvalidToken = errors.New("invalid authentication token")
)

// FieldError is a validation failure tied to a specific input field.
// It unwraps to ErrValidation so callers can match the whole class.
type FieldError struct {
	Field   string
	Message string
}

// NewFieldError creates a FieldError for the given field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}
