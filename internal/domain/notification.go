package domain

import "time"

// NotificationType represents the kind of event a notification describes.
type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationTaskUpdated   NotificationType = "task_updated"
	NotificationTaskDueSoon   NotificationType = "task_due_soon"
	NotificationTaskOverdue   NotificationType = "task_overdue"
	NotificationTaskCompleted NotificationType = "task_completed"
	NotificationUserMention   NotificationType = "user_mention"
	NotificationSystemAlert   NotificationType = "system_alert"
)

// MaxNotificationMessageLen bounds the persisted message text.
const MaxNotificationMessageLen = 200

// Notification is a persisted message to a specific user about a task
// lifecycle event. Notifications are created only by the notification
// engine and never mutated afterwards except to flip IsRead.
type Notification struct {
	ID        string
	UserID    string
	TaskID    *string // nil once the referenced task is hard-removed
	Type      NotificationType
	Message   string
	ActionURL *string
	IsRead    bool
	CreatedAt time.Time
}

// IsOwnedBy checks if the notification belongs to the given user.
func (n *Notification) IsOwnedBy(userID string) bool {
	return n.UserID == userID
}
