package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskit-app/taskit/internal/domain"
)

// Enum columns sort by declaration order, not alphabetically.
const (
	statusRankExpr   = "CASE status WHEN 'TODO' THEN 1 WHEN 'IN_PROGRESS' THEN 2 WHEN 'ON_HOLD' THEN 3 WHEN 'COMPLETED' THEN 4 WHEN 'CANCELLED' THEN 5 END"
	priorityRankExpr = "CASE priority WHEN 'low' THEN 1 WHEN 'medium' THEN 2 WHEN 'high' THEN 3 WHEN 'critical' THEN 4 END"
)

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	UserID         string // Required: tasks assigned to or created by this user
	Search         string // Optional: substring match over title/description/category
	Sort           domain.TaskSort
	IncludeDeleted bool // Diagnostic mode: also return soft-deleted rows
	Limit          int  // Required: page size
	Offset         int  // Required: page offset
}

// whereClauses applies the filter predicates shared by the page and count queries.
func (f TaskListFilters) whereClauses(qb sq.SelectBuilder) sq.SelectBuilder {
	qb = qb.Where(sq.Or{
		sq.Eq{"assigned_to_id": f.UserID},
		sq.Eq{"created_by_id": f.UserID},
	})

	if !f.IncludeDeleted {
		qb = qb.Where(sq.Eq{"is_deleted": false})
	}

	// Case-insensitive substring search, matching the detail the dashboard
	// search box exposes.
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
			sq.ILike{"category": pattern},
		})
	}

	return qb
}

// orderBy returns the ORDER BY expression for the validated sort variant.
func orderBy(sort domain.TaskSort) string {
	var expr string
	switch sort.Field {
	case domain.SortByDueDate:
		expr = "due_date"
	case domain.SortByStatus:
		expr = statusRankExpr
	case domain.SortByPriority:
		expr = priorityRankExpr
	default:
		expr = "title"
	}

	if sort.Desc {
		return expr + " DESC"
	}
	return expr + " ASC"
}

// List retrieves a page of the user's tasks along with the unpaginated total.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	qb := filters.whereClauses(psql.Select(taskColumns...).From("tasks")).
		OrderBy(orderBy(filters.Sort)).
		OrderBy("id ASC"). // stable order for rows equal under the primary sort
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := filters.whereClauses(psql.Select("COUNT(*)").From("tasks")).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}
