package dto

import "time"

// TaskRequest is the request body for POST /tasks and PUT /tasks/{id}.
// Creator identity is never part of it; it always comes from the
// authenticated caller.
type TaskRequest struct {
	Title          string     `json:"title" validate:"required,max=100"`
	Description    string     `json:"description" validate:"max=500"`
	Status         string     `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS ON_HOLD COMPLETED CANCELLED"`
	Priority       string     `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	Category       string     `json:"category,omitempty" validate:"max=100"`
	EstimatedHours *int       `json:"estimated_hours,omitempty" validate:"omitempty,gte=0"`
	ActualHours    *int       `json:"actual_hours,omitempty" validate:"omitempty,gte=0"`
	AssignedToID   *string    `json:"assigned_to_id,omitempty"`
}

// ListTasksQuery represents the query parameters for GET /tasks.
type ListTasksQuery struct {
	SortOrder      string // ?sortOrder=priority_desc
	SearchString   string // ?searchString=refactor
	PageNumber     int    // ?pageNumber=2 (1-indexed)
	IncludeDeleted bool   // ?includeDeleted=true (diagnostic mode)
}
