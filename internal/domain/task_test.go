package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/taskit-app/taskit/internal/domain"
)

var noon = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestTaskStatus_IsValid(t *testing.T) {
	valid := []domain.TaskStatus{
		domain.TaskStatusToDo,
		domain.TaskStatusInProgress,
		domain.TaskStatusOnHold,
		domain.TaskStatusCompleted,
		domain.TaskStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}

	assert.False(t, domain.TaskStatus("DONE").IsValid())
	assert.False(t, domain.TaskStatus("todo").IsValid(), "statuses are case sensitive")
	assert.False(t, domain.TaskStatus("").IsValid())
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.TaskStatusCompleted.IsTerminal())
	assert.True(t, domain.TaskStatusCancelled.IsTerminal())
	assert.False(t, domain.TaskStatusToDo.IsTerminal())
	assert.False(t, domain.TaskStatusInProgress.IsTerminal())
	assert.False(t, domain.TaskStatusOnHold.IsTerminal())
}

func TestTaskPriority_IsValid(t *testing.T) {
	for _, p := range []domain.TaskPriority{
		domain.TaskPriorityLow,
		domain.TaskPriorityMedium,
		domain.TaskPriorityHigh,
		domain.TaskPriorityCritical,
	} {
		assert.True(t, p.IsValid(), "priority %q should be valid", p)
	}

	assert.False(t, domain.TaskPriority("urgent").IsValid())
	assert.False(t, domain.TaskPriority("HIGH").IsValid(), "priorities are case sensitive")
}

func TestTaskPriority_IsHigh(t *testing.T) {
	assert.True(t, domain.TaskPriorityHigh.IsHigh())
	assert.True(t, domain.TaskPriorityCritical.IsHigh())
	assert.False(t, domain.TaskPriorityMedium.IsHigh())
	assert.False(t, domain.TaskPriorityLow.IsHigh())
}

func TestTask_IsOverdue(t *testing.T) {
	tests := []struct {
		name    string
		dueDate *time.Time
		status  domain.TaskStatus
		want    bool
	}{
		{"no due date", nil, domain.TaskStatusToDo, false},
		{"due yesterday", datePtr(noon.Add(-24 * time.Hour)), domain.TaskStatusToDo, true},
		{"due earlier today", datePtr(noon.Add(-time.Hour)), domain.TaskStatusToDo, false},
		{"due tomorrow", datePtr(noon.Add(24 * time.Hour)), domain.TaskStatusToDo, false},
		{"overdue but completed", datePtr(noon.Add(-24 * time.Hour)), domain.TaskStatusCompleted, false},
		{"overdue and cancelled", datePtr(noon.Add(-24 * time.Hour)), domain.TaskStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.want, task.IsOverdue(noon))
		})
	}
}

func TestTask_IsDueSoon(t *testing.T) {
	window := 2 * 24 * time.Hour

	tests := []struct {
		name    string
		dueDate *time.Time
		status  domain.TaskStatus
		want    bool
	}{
		{"no due date", nil, domain.TaskStatusToDo, false},
		{"due tomorrow", datePtr(noon.Add(24 * time.Hour)), domain.TaskStatusToDo, true},
		{"due later today", datePtr(noon.Add(time.Hour)), domain.TaskStatusToDo, true},
		{"exactly at window boundary", datePtr(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)), domain.TaskStatusToDo, true},
		{"just past the window", datePtr(time.Date(2026, 3, 17, 0, 0, 1, 0, time.UTC)), domain.TaskStatusToDo, false},
		{"already overdue", datePtr(noon.Add(-24 * time.Hour)), domain.TaskStatusToDo, false},
		{"due tomorrow but completed", datePtr(noon.Add(24 * time.Hour)), domain.TaskStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &domain.Task{Status: tt.status, DueDate: tt.dueDate}
			assert.Equal(t, tt.want, task.IsDueSoon(noon, window))
		})
	}
}

func TestTask_Ownership(t *testing.T) {
	assignee := "user-2"
	task := &domain.Task{CreatedByID: "user-1", AssignedToID: &assignee}

	assert.True(t, task.IsCreatedBy("user-1"))
	assert.False(t, task.IsCreatedBy("user-2"))
	assert.True(t, task.IsAssignedTo("user-2"))
	assert.False(t, task.IsAssignedTo("user-1"))

	unassigned := &domain.Task{CreatedByID: "user-1"}
	assert.False(t, unassigned.IsAssignedTo("user-1"))
}

func TestParseTaskSort(t *testing.T) {
	tests := []struct {
		sortOrder string
		want      domain.TaskSort
	}{
		{"", domain.TaskSort{Field: domain.SortByTitle}},
		{"title_desc", domain.TaskSort{Field: domain.SortByTitle, Desc: true}},
		{"duedate", domain.TaskSort{Field: domain.SortByDueDate}},
		{"duedate_desc", domain.TaskSort{Field: domain.SortByDueDate, Desc: true}},
		{"status", domain.TaskSort{Field: domain.SortByStatus}},
		{"status_desc", domain.TaskSort{Field: domain.SortByStatus, Desc: true}},
		{"priority", domain.TaskSort{Field: domain.SortByPriority}},
		{"priority_desc", domain.TaskSort{Field: domain.SortByPriority, Desc: true}},
		{"PRIORITY_DESC", domain.TaskSort{Field: domain.SortByPriority, Desc: true}},
		{"name_desc", domain.TaskSort{Field: domain.SortByTitle}},
		{"garbage", domain.TaskSort{Field: domain.SortByTitle}},
	}

	for _, tt := range tests {
		t.Run("sortOrder="+tt.sortOrder, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ParseTaskSort(tt.sortOrder))
		})
	}
}
