package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the lifecycle status of a task.
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusOnHold     TaskStatus = "ON_HOLD"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// IsTerminal returns true if the status is terminal. Terminal tasks never
// receive due-soon or overdue notifications.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusToDo, TaskStatusInProgress, TaskStatusOnHold,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "low"
	TaskPriorityMedium   TaskPriority = "medium"
	TaskPriorityHigh     TaskPriority = "high"
	TaskPriorityCritical TaskPriority = "critical"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	default:
		return false
	}
}

// IsHigh returns true for the priorities counted as high-priority on the dashboard.
func (p TaskPriority) IsHigh() bool {
	return p == TaskPriorityHigh || p == TaskPriorityCritical
}

// Field limits enforced before any write reaches the database.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxCategoryLen    = 100
)

// Task represents a unit of work tracked for a user.
type Task struct {
	ID             string
	Title          string
	Description    string
	Status         TaskStatus
	Priority       TaskPriority
	DueDate        *time.Time
	Category       string
	EstimatedHours *int
	ActualHours    *int
	CreatedByID    string
	AssignedToID   *string
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAssignedTo checks if the task is assigned to the given user.
func (t *Task) IsAssignedTo(userID string) bool {
	return t.AssignedToID != nil && *t.AssignedToID == userID
}

// IsCreatedBy checks if the task was created by the given user.
func (t *Task) IsCreatedBy(userID string) bool {
	return t.CreatedByID == userID
}

// IsOverdue reports whether the task's due date has passed without completion.
// Comparison is against the start of the current day, not the exact instant.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(startOfDay(now))
}

// IsDueSoon reports whether the task's due date falls within the given window
// from the start of the current day. Overdue and completed tasks are not due soon.
func (t *Task) IsDueSoon(now time.Time, window time.Duration) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted || t.IsOverdue(now) {
		return false
	}
	return !t.DueDate.After(startOfDay(now).Add(window))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SortField identifies a task list sort column.
type SortField string

const (
	SortByTitle    SortField = "title"
	SortByDueDate  SortField = "due_date"
	SortByStatus   SortField = "status"
	SortByPriority SortField = "priority"
)

// TaskSort is the closed set of task list orderings, validated at the boundary.
type TaskSort struct {
	Field SortField
	Desc  bool
}

// ParseTaskSort maps a sortOrder query value to a TaskSort. Unrecognized
// values fall back to ascending title order.
func ParseTaskSort(sortOrder string) TaskSort {
	switch strings.ToLower(sortOrder) {
	case "title_desc":
		return TaskSort{Field: SortByTitle, Desc: true}
	case "duedate":
		return TaskSort{Field: SortByDueDate}
	case "duedate_desc":
		return TaskSort{Field: SortByDueDate, Desc: true}
	case "status":
		return TaskSort{Field: SortByStatus}
	case "status_desc":
		return TaskSort{Field: SortByStatus, Desc: true}
	case "priority":
		return TaskSort{Field: SortByPriority}
	case "priority_desc":
		return TaskSort{Field: SortByPriority, Desc: true}
	default:
		return TaskSort{Field: SortByTitle}
	}
}
