package services

import (
	"fmt"

	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/repository"
)

// DashboardStats aggregates task counts and pending lists for one user,
// scoped to their active organization when one is set.
type DashboardStats struct {
	TotalTasks        int64
	TasksAssignedByMe int64
	TasksAssignedToMe int64
	PendingByMe       int64
	PendingToMe       int64
	CompletedTasks    int64
	OverdueTasks      int64
	PendingByMeList   []models.Task
	PendingToMeList   []models.Task
}

// StatusBreakdown returns the pending/completed/overdue chart counts. The
// pending bucket sums the two role-scoped counts, so a self-assigned pending
// task is counted twice; this mirrors the two independent sub-queries the
// dashboard has always run.
func (s DashboardStats) StatusBreakdown() map[string]int64 {
	return map[string]int64{
		"pending":   s.PendingByMe + s.PendingToMe,
		"completed": s.CompletedTasks,
		"overdue":   s.OverdueTasks,
	}
}

// DashboardService computes per-user task statistics.
type DashboardService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// GetStats computes dashboard statistics for the user. The sub-queries run
// without a shared snapshot; concurrent writes may skew individual counts but
// never fail the read.
func (s *DashboardService) GetStats(userID uint64) (*DashboardStats, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	orgID := user.ActiveOrganizationID
	completed := models.TaskStatusCompleted
	overdue := models.TaskStatusOverdue
	pending := models.TaskStatusPending

	stats := &DashboardStats{}

	counts := []struct {
		dst    *int64
		filter repository.RoleFilter
	}{
		{&stats.TotalTasks, repository.RoleFilter{UserID: userID, Role: repository.RoleEither, OrganizationID: orgID}},
		{&stats.TasksAssignedByMe, repository.RoleFilter{UserID: userID, Role: repository.RoleCreator, OrganizationID: orgID}},
		{&stats.TasksAssignedToMe, repository.RoleFilter{UserID: userID, Role: repository.RoleAssignee, OrganizationID: orgID}},
		{&stats.PendingByMe, repository.RoleFilter{UserID: userID, Role: repository.RoleCreator, Status: &pending, OrganizationID: orgID}},
		{&stats.PendingToMe, repository.RoleFilter{UserID: userID, Role: repository.RoleAssignee, Status: &pending, OrganizationID: orgID}},
		{&stats.CompletedTasks, repository.RoleFilter{UserID: userID, Role: repository.RoleEither, Status: &completed, OrganizationID: orgID}},
		{&stats.OverdueTasks, repository.RoleFilter{UserID: userID, Role: repository.RoleEither, Status: &overdue, OrganizationID: orgID}},
	}

	for _, c := range counts {
		n, err := s.taskRepo.CountByRole(c.filter)
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}
		*c.dst = n
	}

	stats.PendingByMeList, err = s.taskRepo.ListPendingByRole(
		repository.RoleFilter{UserID: userID, Role: repository.RoleCreator, OrganizationID: orgID},
		"AssignedTo",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}

	stats.PendingToMeList, err = s.taskRepo.ListPendingByRole(
		repository.RoleFilter{UserID: userID, Role: repository.RoleAssignee, OrganizationID: orgID},
		"CreatedBy",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tasks: %w", err)
	}

	return stats, nil
}
