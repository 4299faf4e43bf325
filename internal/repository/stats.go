package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskit-app/taskit/internal/domain"
)

// UserStatsResult holds dashboard counters for a single user. A task belongs
// to a user when it is assigned to them or created by them; the counts use
// the same visibility rules as the default task listing, so soft-deleted
// rows are excluded.
type UserStatsResult struct {
	Total        int
	Completed    int
	Pending      int
	InProgress   int
	Overdue      int
	HighPriority int
}

// GetUserStats computes dashboard counters in a single aggregate query.
// today is the start-of-day boundary used for the overdue cutoff.
func (r *TaskRepository) GetUserStats(ctx context.Context, userID string, today time.Time) (*UserStatsResult, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed,
			COUNT(*) FILTER (WHERE status = 'TODO') AS pending,
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS') AS in_progress,
			COUNT(*) FILTER (WHERE due_date < $2 AND status <> 'COMPLETED') AS overdue,
			COUNT(*) FILTER (WHERE priority IN ('high', 'critical')) AS high_priority
		FROM tasks
		WHERE (assigned_to_id = $1 OR created_by_id = $1)
		  AND NOT is_deleted
	`

	var result UserStatsResult
	err := r.pool.QueryRow(ctx, query, userID, today).Scan(
		&result.Total,
		&result.Completed,
		&result.Pending,
		&result.InProgress,
		&result.Overdue,
		&result.HighPriority,
	)
	if err != nil {
		return nil, fmt.Errorf("query user stats: %w", err)
	}

	return &result, nil
}

// GetRecentTasks retrieves the user's most recently created tasks.
func (r *TaskRepository) GetRecentTasks(ctx context.Context, userID string, limit int) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Or{
			sq.Eq{"assigned_to_id": userID},
			sq.Eq{"created_by_id": userID},
		}).
		Where(sq.Eq{"is_deleted": false}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetRecentTasks query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent tasks: %w", err)
	}

	return scanTasks(rows)
}
