package dto

import (
	"time"

	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/services"
)

// UserRefDTO is a minimal user reference embedded in task responses
type UserRefDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	DueDate      time.Time           `json:"dueDate"`
	Priority     models.TaskPriority `json:"priority"`
	Status       models.TaskStatus   `json:"status"`
	ReminderSent bool                `json:"reminderSent"`
	AssignedTo   *UserRefDTO         `json:"assignedTo,omitempty"`
	CreatedBy    *UserRefDTO         `json:"createdBy,omitempty"`
	Organization *uint64             `json:"organization"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// PendingTaskDTO is a slimmed task row for the dashboard pending lists. The
// counterparty is the assignee for tasks the user created and the creator for
// tasks assigned to the user.
type PendingTaskDTO struct {
	ID         uint64              `json:"id"`
	Title      string              `json:"title"`
	Priority   models.TaskPriority `json:"priority"`
	DueDate    time.Time           `json:"dueDate"`
	AssignedTo *UserRefDTO         `json:"assignedTo,omitempty"`
	CreatedBy  *UserRefDTO         `json:"createdBy,omitempty"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks []TaskDTO `json:"tasks"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Pages int       `json:"pages"`
}

// DashboardStatsResponse is the dashboard aggregation payload
type DashboardStatsResponse struct {
	TotalTasks        int64            `json:"totalTasks"`
	TasksAssignedByMe int64            `json:"tasksAssignedByMe"`
	TasksAssignedToMe int64            `json:"tasksAssignedToMe"`
	PendingByMe       int64            `json:"pendingByMe"`
	PendingToMe       int64            `json:"pendingToMe"`
	CompletedTasks    int64            `json:"completedTasks"`
	OverdueTasks      int64            `json:"overdueTasks"`
	PendingByMeList   []PendingTaskDTO `json:"pendingByMeList"`
	PendingToMeList   []PendingTaskDTO `json:"pendingToMeList"`
	StatusBreakdown   map[string]int64 `json:"statusBreakdown"`
}

// Conversion functions

// ToUserRefDTO converts a User model to UserRefDTO
func ToUserRefDTO(user models.User) UserRefDTO {
	return UserRefDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		DueDate:      task.DueDate,
		Priority:     task.Priority,
		Status:       task.Status,
		ReminderSent: task.ReminderSent,
		Organization: task.OrganizationID,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}

	// Include references only when preloaded
	if task.AssignedTo.ID != 0 {
		assignee := ToUserRefDTO(task.AssignedTo)
		dto.AssignedTo = &assignee
	}
	if task.CreatedBy.ID != 0 {
		creator := ToUserRefDTO(task.CreatedBy)
		dto.CreatedBy = &creator
	}

	return dto
}

// ToTaskListResponse converts tasks to a paginated response
func ToTaskListResponse(tasks []models.Task, total int64, page, pages int) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Total: total,
		Page:  page,
		Pages: pages,
	}
}

// ToDashboardStatsResponse converts dashboard stats to the response payload
func ToDashboardStatsResponse(stats *services.DashboardStats) DashboardStatsResponse {
	byMe := make([]PendingTaskDTO, len(stats.PendingByMeList))
	for i, task := range stats.PendingByMeList {
		assignee := ToUserRefDTO(task.AssignedTo)
		byMe[i] = PendingTaskDTO{
			ID:         task.ID,
			Title:      task.Title,
			Priority:   task.Priority,
			DueDate:    task.DueDate,
			AssignedTo: &assignee,
		}
	}

	toMe := make([]PendingTaskDTO, len(stats.PendingToMeList))
	for i, task := range stats.PendingToMeList {
		creator := ToUserRefDTO(task.CreatedBy)
		toMe[i] = PendingTaskDTO{
			ID:        task.ID,
			Title:     task.Title,
			Priority:  task.Priority,
			DueDate:   task.DueDate,
			CreatedBy: &creator,
		}
	}

	return DashboardStatsResponse{
		TotalTasks:        stats.TotalTasks,
		TasksAssignedByMe: stats.TasksAssignedByMe,
		TasksAssignedToMe: stats.TasksAssignedToMe,
		PendingByMe:       stats.PendingByMe,
		PendingToMe:       stats.PendingToMe,
		CompletedTasks:    stats.CompletedTasks,
		OverdueTasks:      stats.OverdueTasks,
		PendingByMeList:   byMe,
		PendingToMeList:   toMe,
		StatusBreakdown:   stats.StatusBreakdown(),
	}
}
