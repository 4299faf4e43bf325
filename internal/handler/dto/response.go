package dto

import (
	"time"

	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
	"github.com/taskit-app/taskit/internal/service"
)

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	Category       string     `json:"category,omitempty"`
	EstimatedHours *int       `json:"estimated_hours"`
	ActualHours    *int       `json:"actual_hours"`
	CreatedByID    string     `json:"created_by_id"`
	AssignedToID   *string    `json:"assigned_to_id"`
	IsDeleted      bool       `json:"is_deleted"`
	IsOverdue      bool       `json:"is_overdue"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskPageResponse represents the response for GET /tasks.
type TaskPageResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	TaskID    *string   `json:"task_id"`
	ActionURL *string   `json:"action_url"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// UnreadCountResponse represents the response for GET /notifications/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse represents the response for POST /notifications/read-all.
type MarkAllReadResponse struct {
	Marked int `json:"marked"`
}

// StatisticsResponse represents per-user dashboard counters.
type StatisticsResponse struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	InProgress   int `json:"in_progress"`
	Overdue      int `json:"overdue"`
	HighPriority int `json:"high_priority"`
}

// DashboardResponse represents the response for GET /dashboard.
type DashboardResponse struct {
	Statistics          StatisticsResponse     `json:"statistics"`
	RecentTasks         []TaskResponse         `json:"recent_tasks"`
	RecentNotifications []NotificationResponse `json:"recent_notifications"`
	UnreadCount         int                    `json:"unread_count"`
}

// ToTaskResponse converts a domain.Task to its API representation.
func ToTaskResponse(task *domain.Task, now time.Time) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		Description:    task.Description,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		DueDate:        task.DueDate,
		Category:       task.Category,
		EstimatedHours: task.EstimatedHours,
		ActualHours:    task.ActualHours,
		CreatedByID:    task.CreatedByID,
		AssignedToID:   task.AssignedToID,
		IsDeleted:      task.IsDeleted,
		IsOverdue:      task.IsOverdue(now),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

// ToTaskResponses converts a slice of tasks.
func ToTaskResponses(tasks []*domain.Task, now time.Time) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskResponse(task, now)
	}
	return out
}

// ToTaskPageResponse converts a service.TaskPage.
func ToTaskPageResponse(page *service.TaskPage, now time.Time) TaskPageResponse {
	return TaskPageResponse{
		Tasks:      ToTaskResponses(page.Tasks, now),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

// ToNotificationResponse converts a domain.Notification.
func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Type:      string(n.Type),
		TaskID:    n.TaskID,
		ActionURL: n.ActionURL,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications.
func ToNotificationResponses(notifications []*domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = ToNotificationResponse(n)
	}
	return out
}

// ToStatisticsResponse converts the repository stats result.
func ToStatisticsResponse(stats *repository.UserStatsResult) StatisticsResponse {
	return StatisticsResponse{
		Total:        stats.Total,
		Completed:    stats.Completed,
		Pending:      stats.Pending,
		InProgress:   stats.InProgress,
		Overdue:      stats.Overdue,
		HighPriority: stats.HighPriority,
	}
}

// ToDashboardResponse converts a service.Overview.
func ToDashboardResponse(o *service.Overview, now time.Time) DashboardResponse {
	return DashboardResponse{
		Statistics:          ToStatisticsResponse(o.Stats),
		RecentTasks:         ToTaskResponses(o.RecentTasks, now),
		RecentNotifications: ToNotificationResponses(o.RecentNotifications),
		UnreadCount:         o.UnreadCount,
	}
}
