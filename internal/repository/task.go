package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskit-app/taskit/internal/domain"
)

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "description", "status", "priority", "due_date",
	"category", "estimated_hours", "actual_hours", "created_by_id",
	"assigned_to_id", "is_deleted", "created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.Category,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.CreatedByID,
		&task.AssignedToID,
		&task.IsDeleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// Create inserts a new task and returns it with ID and timestamps populated.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "status", "priority", "due_date",
			"category", "estimated_hours", "actual_hours",
			"created_by_id", "assigned_to_id",
		).
		Values(
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.DueDate,
			task.Category,
			task.EstimatedHours,
			task.ActualHours,
			task.CreatedByID,
			task.AssignedToID,
		).
		Suffix("RETURNING id, is_deleted, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&task.ID, &task.IsDeleted, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// GetByID retrieves a task by ID. Soft-deleted rows are returned only when
// includeDeleted is set.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string, includeDeleted bool) (*domain.Task, error) {
	qb := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID})

	if !includeDeleted {
		qb = qb.Where(sq.Eq{"is_deleted": false})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// Update overwrites the mutable columns of a task. CreatedByID, CreatedAt
// and IsDeleted are never touched here. Last writer wins; no version token.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query, args, err := psql.
		Update("tasks").
		Set("title", task.Title).
		Set("description", task.Description).
		Set("status", task.Status).
		Set("priority", task.Priority).
		Set("due_date", task.DueDate).
		Set("category", task.Category).
		Set("estimated_hours", task.EstimatedHours).
		Set("actual_hours", task.ActualHours).
		Set("assigned_to_id", task.AssignedToID).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": task.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Update query for task %s: %w", task.ID, err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

// SoftDelete marks a task deleted. Idempotent: deleting an already-deleted
// task is a no-op. Returns ErrTaskNotFound only when the id never existed.
func (r *TaskRepository) SoftDelete(ctx context.Context, taskID string) error {
	query, args, err := psql.
		Update("tasks").
		Set("is_deleted", true).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build SoftDelete query for task %s: %w", taskID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// FindDueSoon finds non-deleted, assigned, non-terminal tasks whose due date
// falls between from and the end of the window. Callers pass the start of
// the current day as from.
func (r *TaskRepository) FindDueSoon(ctx context.Context, from time.Time, window time.Duration) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"is_deleted": false}).
		Where(sq.NotEq{"assigned_to_id": nil}).
		Where(sq.NotEq{"status": []domain.TaskStatus{
			domain.TaskStatusCompleted,
			domain.TaskStatusCancelled,
		}}).
		Where(sq.GtOrEq{"due_date": from}).
		Where(sq.LtOrEq{"due_date": from.Add(window)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindDueSoon query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query due soon tasks: %w", err)
	}

	return scanTasks(rows)
}

// FindOverdue finds non-deleted, assigned, non-terminal tasks whose due date
// lies before the cutoff. Callers pass the start of the current day.
func (r *TaskRepository) FindOverdue(ctx context.Context, before time.Time) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"is_deleted": false}).
		Where(sq.NotEq{"assigned_to_id": nil}).
		Where(sq.NotEq{"status": []domain.TaskStatus{
			domain.TaskStatusCompleted,
			domain.TaskStatusCancelled,
		}}).
		Where(sq.Lt{"due_date": before}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindOverdue query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query overdue tasks: %w", err)
	}

	return scanTasks(rows)
}
