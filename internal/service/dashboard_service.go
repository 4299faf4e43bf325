package service

import (
	"context"
	"time"

	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
)

// recentLimit is the number of recent tasks and notifications on the dashboard.
const recentLimit = 5

// DashboardService computes per-user summary views. Pure reads, consistent
// with the default task listing: a task belongs to the user when assigned to
// or created by them, and soft-deleted rows never count.
type DashboardService struct {
	taskRepo         *repository.TaskRepository
	notificationRepo *repository.NotificationRepository
	now              func() time.Time
}

// NewDashboardService creates a new DashboardService. A nil now defaults to time.Now.
func NewDashboardService(
	taskRepo *repository.TaskRepository,
	notificationRepo *repository.NotificationRepository,
	now func() time.Time,
) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		taskRepo:         taskRepo,
		notificationRepo: notificationRepo,
		now:              now,
	}
}

// Overview bundles everything the dashboard view renders.
type Overview struct {
	Stats               *repository.UserStatsResult
	RecentTasks         []*domain.Task
	RecentNotifications []*domain.Notification
	UnreadCount         int
}

// Statistics computes the user's task counters. Overdue uses a start-of-day
// cutoff: a task due earlier today is not yet overdue.
func (s *DashboardService) Statistics(ctx context.Context, userID string) (*repository.UserStatsResult, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.taskRepo.GetUserStats(ctx, userID, today)
}

// RecentTasks returns the user's most recently created tasks.
func (s *DashboardService) RecentTasks(ctx context.Context, userID string, limit int) ([]*domain.Task, error) {
	if limit <= 0 {
		limit = recentLimit
	}
	return s.taskRepo.GetRecentTasks(ctx, userID, limit)
}

// GetOverview assembles the full dashboard payload for the user.
func (s *DashboardService) GetOverview(ctx context.Context, userID string) (*Overview, error) {
	stats, err := s.Statistics(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.GetRecentTasks(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.ListByUser(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Stats:               stats,
		RecentTasks:         tasks,
		RecentNotifications: notifications,
		UnreadCount:         unread,
	}, nil
}
