package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskit-app/taskit/internal/domain"
)

// notificationColumns is the shared list of columns for notification queries.
var notificationColumns = []string{
	"id", "user_id", "task_id", "type", "message", "action_url", "is_read", "created_at",
}

// NotificationRepository handles database operations for notifications.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	err := row.Scan(
		&n.ID,
		&n.UserID,
		&n.TaskID,
		&n.Type,
		&n.Message,
		&n.ActionURL,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("scan notification: %w", err)
	}
	return &n, nil
}

func scanNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return notifications, nil
}

// Create inserts a new notification and returns it with ID and CreatedAt populated.
func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query, args, err := psql.
		Insert("notifications").
		Columns("user_id", "task_id", "type", "message", "action_url").
		Values(n.UserID, n.TaskID, n.Type, n.Message, n.ActionURL).
		Suffix("RETURNING id, is_read, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for notification: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

// GetByID retrieves a notification by ID.
func (r *NotificationRepository) GetByID(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query, args, err := psql.
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": notificationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for notification: %w", err)
	}

	return scanNotification(r.pool.QueryRow(ctx, query, args...))
}

// MarkRead flips a notification to read. Idempotent.
func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	query, args, err := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": notificationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build MarkRead query for notification %s: %w", notificationID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flips every unread notification of the user to read and
// returns the number of rows affected.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int, error) {
	query, args, err := psql.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{
			"user_id": userID,
			"is_read": false,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build MarkAllRead query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// UnreadCount returns the number of unread notifications for the user.
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("notifications").
		Where(sq.Eq{
			"user_id": userID,
			"is_read": false,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build UnreadCount query: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// ListByUser retrieves the user's notifications ordered newest first.
// A limit of 0 returns all of them.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	qb := psql.
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByUser query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}

	return scanNotifications(rows)
}
