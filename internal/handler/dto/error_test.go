package dto_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/handler/dto"
)

func TestMapDomainError_FieldError(t *testing.T) {
	err := domain.NewFieldError("title", "title is required")

	status, body := dto.MapDomainError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, map[string]string{"title": "title is required"}, body.Error.Fields)
}

func TestMapDomainError_WrappedFieldError(t *testing.T) {
	err := fmt.Errorf("create task: %w", domain.NewFieldError("assigned_to_id", "assignee does not exist"))

	status, body := dto.MapDomainError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Error.Fields, "assigned_to_id")
}

func TestMapDomainError_Sentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{domain.ErrNotificationNotFound, http.StatusNotFound, "NOTIFICATION_NOT_FOUND"},
		{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{domain.ErrNotNotificationOwner, http.StatusForbidden, "INSUFFICIENT_ACCESS"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{domain.ErrValidation, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, body := dto.MapDomainError(fmt.Errorf("wrapped: %w", tt.err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestMapDomainError_UnknownCollapsesTo500(t *testing.T) {
	status, body := dto.MapDomainError(errors.New("connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.Equal(t, "Internal server error", body.Error.Message, "internal detail must not leak")
}
