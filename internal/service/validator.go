package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
)

// Validator checks task input against field limits and referential rules
// before anything reaches the database. Assignee existence is verified here
// on purpose: relying on the foreign key would surface as a storage error
// after the fact instead of a field-level validation failure.
type Validator struct {
	userRepo *repository.UserRepository
}

// NewValidator creates a new Validator.
func NewValidator(userRepo *repository.UserRepository) *Validator {
	return &Validator{userRepo: userRepo}
}

// ValidateTask checks the writable task fields shared by create and update.
func (v *Validator) ValidateTask(ctx context.Context, params TaskParams) error {
	if params.Title == "" {
		return domain.NewFieldError("title", "title is required")
	}
	if utf8.RuneCountInString(params.Title) > domain.MaxTitleLen {
		return domain.NewFieldError("title", fmt.Sprintf("title cannot exceed %d characters", domain.MaxTitleLen))
	}
	if utf8.RuneCountInString(params.Description) > domain.MaxDescriptionLen {
		return domain.NewFieldError("description", fmt.Sprintf("description cannot exceed %d characters", domain.MaxDescriptionLen))
	}
	if utf8.RuneCountInString(params.Category) > domain.MaxCategoryLen {
		return domain.NewFieldError("category", fmt.Sprintf("category cannot exceed %d characters", domain.MaxCategoryLen))
	}
	if !params.Status.IsValid() {
		return domain.NewFieldError("status", "status must be one of: TODO, IN_PROGRESS, ON_HOLD, COMPLETED, CANCELLED")
	}
	if !params.Priority.IsValid() {
		return domain.NewFieldError("priority", "priority must be one of: low, medium, high, critical")
	}
	if params.EstimatedHours != nil && *params.EstimatedHours < 0 {
		return domain.NewFieldError("estimated_hours", "estimated hours cannot be negative")
	}
	if params.ActualHours != nil && *params.ActualHours < 0 {
		return domain.NewFieldError("actual_hours", "actual hours cannot be negative")
	}

	if params.AssignedToID != nil {
		if *params.AssignedToID == "" {
			return domain.NewFieldError("assigned_to_id", "assignee id cannot be empty")
		}
		exists, err := v.userRepo.Exists(ctx, *params.AssignedToID)
		if err != nil {
			return fmt.Errorf("check assignee: %w", err)
		}
		if !exists {
			return domain.NewFieldError("assigned_to_id", "assignee does not exist")
		}
	}

	return nil
}
