package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/notify"
	"github.com/taskpal/taskpal-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired           = errors.New("title is required")
	ErrDueDateRequired         = errors.New("due date is required")
	ErrAssigneeRequired        = errors.New("assignee is required")
	ErrAssigneeNotFound        = errors.New("assigned user not found")
	ErrAssigneeNotInOrg        = errors.New("assigned user is not a member of your organization")
	ErrInvalidPriority         = errors.New("invalid priority")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrTaskNotFound            = errors.New("task not found")
	ErrTaskPermissionDenied    = errors.New("only the task creator or assignee can modify this task")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo   repository.TaskRepository
	userRepo   repository.UserRepository
	orgRepo    repository.OrganizationRepository
	dispatcher *notify.Dispatcher
	aiService  *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository, dispatcher *notify.Dispatcher, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		dispatcher: dispatcher,
		aiService:  aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title        string
	Description  string
	DueDate      time.Time
	Priority     models.TaskPriority
	AssignedToID uint64
	CreatorID    uint64
}

// CreateTask creates a task scoped to the creator's active organization and
// dispatches an assignment notification to the assignee. When the creator has
// an active organization the assignee must be a member of it.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.DueDate.IsZero() {
		return nil, ErrDueDateRequired
	}
	if input.AssignedToID == 0 {
		return nil, ErrAssigneeRequired
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !models.ValidPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	creator, err := s.userRepo.FindByID(input.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find creator: %w", err)
	}

	assignee, err := s.userRepo.FindByID(input.AssignedToID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}

	if creator.ActiveOrganizationID != nil {
		if _, err := s.orgRepo.FindMember(*creator.ActiveOrganizationID, assignee.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotInOrg
			}
			return nil, fmt.Errorf("failed to verify assignee membership: %w", err)
		}
	}

	task := &models.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		DueDate:        input.DueDate,
		Priority:       input.Priority,
		Status:         models.TaskStatusPending,
		AssignedToID:   assignee.ID,
		CreatedByID:    creator.ID,
		OrganizationID: creator.ActiveOrganizationID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.dispatcher.Publish(notify.Event{
		Kind:       notify.EventTaskAssigned,
		To:         assignee.Email,
		Task:       *task,
		AssignedBy: *creator,
	})

	return s.taskRepo.FindByID(task.ID, "AssignedTo", "CreatedBy")
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID       uint64
	Status       string
	Priority     string
	AssignedToID *uint64
	Page         int
	PageSize     int
}

// ListTasks returns tasks filtered by the supplied criteria and implicitly
// scoped to the user's active organization. Without an active organization
// the listing is unscoped, mirroring the dashboard.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	user, err := s.userRepo.FindByID(input.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find user: %w", err)
	}

	filter := repository.TaskFilter{
		OrganizationID: user.ActiveOrganizationID,
		AssignedToID:   input.AssignedToID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	if input.Status != "" {
		status := models.TaskStatus(input.Status)
		switch status {
		case models.TaskStatusPending, models.TaskStatusCompleted, models.TaskStatusOverdue:
			filter.Status = &status
		default:
			return nil, 0, ErrInvalidStatus
		}
	}
	if input.Priority != "" {
		priority := models.TaskPriority(input.Priority)
		if !models.ValidPriority(priority) {
			return nil, 0, ErrInvalidPriority
		}
		filter.Priority = &priority
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTaskInput represents the allow-listed updatable fields
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.TaskPriority
	Status      *models.TaskStatus
}

// UpdateTask applies allow-listed updates to a task. Only the task's creator
// or assignee may update it, and status changes must follow the forward-only
// state machine: overdue is sweep-only, completed is terminal.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatedByID != actorID && task.AssignedToID != actorID {
		return nil, ErrTaskPermissionDenied
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			return nil, ErrDueDateRequired
		}
		task.DueDate = *input.DueDate
	}
	if input.Priority != nil {
		if !models.ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		switch *input.Status {
		case models.TaskStatusPending, models.TaskStatusCompleted, models.TaskStatusOverdue:
		default:
			return nil, ErrInvalidStatus
		}
		if !models.ValidStatusTransition(task.Status, *input.Status) {
			return nil, ErrInvalidStatusTransition
		}
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "AssignedTo", "CreatedBy")
}
