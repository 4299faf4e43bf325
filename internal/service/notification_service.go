package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
)

// dueDateFormat renders due dates inside notification messages.
const dueDateFormat = "01/02/2006"

// NotificationService derives notifications from task lifecycle events and
// owns the per-recipient read state. It only ever creates rows and flips
// IsRead; notifications are never deleted.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// taskActionURL is the deep link to a task's detail view.
func taskActionURL(taskID string) string {
	return "/tasks/" + taskID
}

// clampMessage keeps persisted messages within the column limit.
// Truncation is rune-based so a multibyte character is never split.
func clampMessage(message string) string {
	runes := []rune(message)
	if len(runes) > domain.MaxNotificationMessageLen {
		return string(runes[:domain.MaxNotificationMessageLen])
	}
	return message
}

func (s *NotificationService) create(ctx context.Context, n *domain.Notification) error {
	n.Message = clampMessage(n.Message)

	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	slog.Info("notification created",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"type", n.Type,
	)
	return nil
}

// TaskAssigned notifies the assignee of a task. No-op when the task has
// no assignee.
func (s *NotificationService) TaskAssigned(ctx context.Context, task *domain.Task) error {
	if task.AssignedToID == nil {
		return nil
	}

	url := taskActionURL(task.ID)
	return s.create(ctx, &domain.Notification{
		UserID:    *task.AssignedToID,
		TaskID:    &task.ID,
		Type:      domain.NotificationTaskAssigned,
		Message:   fmt.Sprintf("You have been assigned to task: %s", task.Title),
		ActionURL: &url,
	})
}

// TaskStatusChanged notifies the creator (when different from the assignee)
// and the assignee about a status transition. Calling it without an actual
// change is a safe no-op.
func (s *NotificationService) TaskStatusChanged(ctx context.Context, task *domain.Task, oldStatus domain.TaskStatus) error {
	if oldStatus == task.Status {
		return nil
	}

	message := fmt.Sprintf("Task status changed from %s to %s: %s", oldStatus, task.Status, task.Title)
	url := taskActionURL(task.ID)

	if task.CreatedByID != "" && !task.IsAssignedTo(task.CreatedByID) {
		err := s.create(ctx, &domain.Notification{
			UserID:    task.CreatedByID,
			TaskID:    &task.ID,
			Type:      domain.NotificationTaskUpdated,
			Message:   message,
			ActionURL: &url,
		})
		if err != nil {
			return err
		}
	}

	if task.AssignedToID != nil {
		err := s.create(ctx, &domain.Notification{
			UserID:    *task.AssignedToID,
			TaskID:    &task.ID,
			Type:      domain.NotificationTaskUpdated,
			Message:   message,
			ActionURL: &url,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// TaskDueSoon notifies the assignee that a task approaches its due date.
// Requires an assignee and a due date; no-op otherwise. Callers must check
// the task is not in a terminal status.
func (s *NotificationService) TaskDueSoon(ctx context.Context, task *domain.Task) error {
	if task.AssignedToID == nil || task.DueDate == nil {
		return nil
	}

	url := taskActionURL(task.ID)
	return s.create(ctx, &domain.Notification{
		UserID:    *task.AssignedToID,
		TaskID:    &task.ID,
		Type:      domain.NotificationTaskDueSoon,
		Message:   fmt.Sprintf("Task due soon: %s is due on %s", task.Title, task.DueDate.Format(dueDateFormat)),
		ActionURL: &url,
	})
}

// TaskOverdue notifies the assignee that a task's due date has passed.
// Requires an assignee and a due date; no-op otherwise.
func (s *NotificationService) TaskOverdue(ctx context.Context, task *domain.Task) error {
	if task.AssignedToID == nil || task.DueDate == nil {
		return nil
	}

	url := taskActionURL(task.ID)
	return s.create(ctx, &domain.Notification{
		UserID:    *task.AssignedToID,
		TaskID:    &task.ID,
		Type:      domain.NotificationTaskOverdue,
		Message:   fmt.Sprintf("Task overdue: %s was due on %s", task.Title, task.DueDate.Format(dueDateFormat)),
		ActionURL: &url,
	})
}

// SystemAlert creates an operational notification for a user.
func (s *NotificationService) SystemAlert(ctx context.Context, userID, message string, actionURL *string) error {
	if message == "" {
		return domain.NewFieldError("message", "message is required")
	}
	if utf8.RuneCountInString(message) > domain.MaxNotificationMessageLen {
		return domain.NewFieldError("message", fmt.Sprintf("message cannot exceed %d characters", domain.MaxNotificationMessageLen))
	}

	return s.create(ctx, &domain.Notification{
		UserID:    userID,
		Type:      domain.NotificationSystemAlert,
		Message:   message,
		ActionURL: actionURL,
	})
}

// MarkRead flips a notification to read on behalf of its recipient.
// Cross-user access is rejected.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, callerID string) error {
	n, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if !n.IsOwnedBy(callerID) {
		return fmt.Errorf("%w: notification %s belongs to another user", domain.ErrNotNotificationOwner, notificationID)
	}

	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead flips every unread notification of the caller to read and
// returns the count affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, callerID string) (int, error) {
	count, err := s.notificationRepo.MarkAllRead(ctx, callerID)
	if err != nil {
		return 0, err
	}

	slog.Info("notifications marked read",
		"user_id", callerID,
		"count", count,
	)
	return count, nil
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// Recent returns the user's most recent notifications, newest first.
func (s *NotificationService) Recent(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, limit)
}

// ListAll returns all of the user's notifications, newest first.
func (s *NotificationService) ListAll(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, 0)
}
