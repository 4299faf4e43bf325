package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taskit-app/taskit/internal/config"
	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
)

// TaskParams holds the writable task fields supplied by a caller.
// CreatedByID and CreatedAt are never part of it: the former always comes
// from the authenticated identity, the latter from the existing record.
type TaskParams struct {
	Title          string
	Description    string
	Status         domain.TaskStatus
	Priority       domain.TaskPriority
	DueDate        *time.Time
	Category       string
	EstimatedHours *int
	ActualHours    *int
	AssignedToID   *string
}

// TaskPage is one page of a task listing.
type TaskPage struct {
	Tasks      []*domain.Task
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ListTasksParams holds the query options for listing tasks.
type ListTasksParams struct {
	Search         string
	Sort           domain.TaskSort
	Page           int // 1-indexed
	IncludeDeleted bool
}

// TaskService coordinates task mutations and the notifications they produce.
// The task write and the notification writes are separate units: a failed
// notification is logged and swallowed, never failing the task mutation.
type TaskService struct {
	taskRepo  *repository.TaskRepository
	notifier  *NotificationService
	validator *Validator
	pageSize  int
	dueWindow time.Duration
	now       func() time.Time
}

// NewTaskService creates a new TaskService. A nil now defaults to time.Now.
func NewTaskService(
	taskRepo *repository.TaskRepository,
	notifier *NotificationService,
	validator *Validator,
	cfg config.TasksConfig,
	now func() time.Time,
) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		taskRepo:  taskRepo,
		notifier:  notifier,
		validator: validator,
		pageSize:  cfg.PageSize,
		dueWindow: time.Duration(cfg.DueSoonDays) * 24 * time.Hour,
		now:       now,
	}
}

// applyDefaults fills the enum zero values the API treats as "not provided".
func applyDefaults(params *TaskParams) {
	if params.Status == "" {
		params.Status = domain.TaskStatusToDo
	}
	if params.Priority == "" {
		params.Priority = domain.TaskPriorityMedium
	}
}

// Create validates and persists a new task for the given creator. When the
// task is created already assigned, the assignee is notified.
func (s *TaskService) Create(ctx context.Context, creatorID string, params TaskParams) (*domain.Task, error) {
	applyDefaults(&params)

	if err := s.validator.ValidateTask(ctx, params); err != nil {
		return nil, err
	}

	task := &domain.Task{
		Title:          params.Title,
		Description:    params.Description,
		Status:         params.Status,
		Priority:       params.Priority,
		DueDate:        params.DueDate,
		Category:       params.Category,
		EstimatedHours: params.EstimatedHours,
		ActualHours:    params.ActualHours,
		CreatedByID:    creatorID,
		AssignedToID:   params.AssignedToID,
	}

	task, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"created_by", creatorID,
	)

	if task.AssignedToID != nil {
		s.notifyAssigned(ctx, task)
	}

	return task, nil
}

// Update validates and applies a full update to an existing task. Soft-deleted
// tasks remain editable. CreatedByID and CreatedAt are preserved from the
// stored record regardless of caller input. Status and assignment changes
// produce notifications.
func (s *TaskService) Update(ctx context.Context, taskID string, params TaskParams) (*domain.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, taskID, true)
	if err != nil {
		return nil, err
	}

	applyDefaults(&params)

	if err := s.validator.ValidateTask(ctx, params); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:             existing.ID,
		Title:          params.Title,
		Description:    params.Description,
		Status:         params.Status,
		Priority:       params.Priority,
		DueDate:        params.DueDate,
		Category:       params.Category,
		EstimatedHours: params.EstimatedHours,
		ActualHours:    params.ActualHours,
		CreatedByID:    existing.CreatedByID,
		AssignedToID:   params.AssignedToID,
		IsDeleted:      existing.IsDeleted,
		CreatedAt:      existing.CreatedAt,
	}

	task, err = s.taskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	slog.Info("task updated",
		"task_id", task.ID,
		"old_status", existing.Status,
		"new_status", task.Status,
	)

	if existing.Status != task.Status {
		if err := s.notifier.TaskStatusChanged(ctx, task, existing.Status); err != nil {
			slog.Error("failed to create status change notification",
				"task_id", task.ID,
				"error", err,
			)
		}
	}

	assigneeChanged := task.AssignedToID != nil &&
		(existing.AssignedToID == nil || *existing.AssignedToID != *task.AssignedToID)
	if assigneeChanged {
		s.notifyAssigned(ctx, task)
	}

	return task, nil
}

// notifyAssigned fires the assignment notification, logging any failure.
func (s *TaskService) notifyAssigned(ctx context.Context, task *domain.Task) {
	if err := s.notifier.TaskAssigned(ctx, task); err != nil {
		slog.Error("failed to create assignment notification",
			"task_id", task.ID,
			"error", err,
		)
	}
}

// SoftDelete marks a task deleted. Idempotent.
func (s *TaskService) SoftDelete(ctx context.Context, taskID string) error {
	if err := s.taskRepo.SoftDelete(ctx, taskID); err != nil {
		return err
	}

	slog.Info("task soft-deleted", "task_id", taskID)
	return nil
}

// Get retrieves a single task.
func (s *TaskService) Get(ctx context.Context, taskID string, includeDeleted bool) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID, includeDeleted)
}

// List returns a page of the tasks visible to the user: those assigned to
// them or created by them.
func (s *TaskService) List(ctx context.Context, userID string, params ListTasksParams) (*TaskPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskListFilters{
		UserID:         userID,
		Search:         params.Search,
		Sort:           params.Sort,
		IncludeDeleted: params.IncludeDeleted,
		Limit:          s.pageSize,
		Offset:         (page - 1) * s.pageSize,
	})
	if err != nil {
		return nil, err
	}

	totalPages := (total + s.pageSize - 1) / s.pageSize

	return &TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
	}, nil
}

// ScanDueDates finds assigned, non-terminal tasks that are due soon or
// overdue and produces the matching notifications. Intended to be run
// periodically from the scan-due-dates command. Per-task failures are
// accumulated and the scan continues.
func (s *TaskService) ScanDueDates(ctx context.Context) (dueSoon, overdue int, err error) {
	// Same day-boundary cutoff as Task.IsOverdue and Task.IsDueSoon.
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var errs []error

	dueSoonTasks, err := s.taskRepo.FindDueSoon(ctx, dayStart, s.dueWindow)
	if err != nil {
		return 0, 0, fmt.Errorf("find due soon tasks: %w", err)
	}
	for _, task := range dueSoonTasks {
		if err := s.notifier.TaskDueSoon(ctx, task); err != nil {
			slog.Error("failed to create due soon notification",
				"task_id", task.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			continue
		}
		dueSoon++
	}

	overdueTasks, err := s.taskRepo.FindOverdue(ctx, dayStart)
	if err != nil {
		return dueSoon, 0, fmt.Errorf("find overdue tasks: %w", err)
	}
	for _, task := range overdueTasks {
		if err := s.notifier.TaskOverdue(ctx, task); err != nil {
			slog.Error("failed to create overdue notification",
				"task_id", task.ID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("task %s: %w", task.ID, err))
			continue
		}
		overdue++
	}

	slog.Info("due date scan completed",
		"due_soon", dueSoon,
		"overdue", overdue,
		"failed", len(errs),
	)

	if len(errs) > 0 {
		return dueSoon, overdue, fmt.Errorf("%d notification failures: %v", len(errs), errs)
	}

	return dueSoon, overdue, nil
}
