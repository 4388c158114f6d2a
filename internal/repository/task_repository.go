package repository

import (
	"time"

	"github.com/taskpal/taskpal-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{})

	if filter.OrganizationID != nil {
		query = query.Where("tasks.organization_id = ?", *filter.OrganizationID)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.AssignedToID != nil {
		query = query.Where("tasks.assigned_to_id = ?", *filter.AssignedToID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.due_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	var tasks []models.Task
	if err := listQuery.Preload("AssignedTo").Preload("CreatedBy").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// CountByRole counts tasks matching a dashboard role filter
func (r *GormTaskRepository) CountByRole(filter RoleFilter) (int64, error) {
	var count int64
	err := r.roleQuery(filter).Count(&count).Error
	return count, err
}

// ListPendingByRole lists pending tasks for a role filter sorted by due date
func (r *GormTaskRepository) ListPendingByRole(filter RoleFilter, preload ...string) ([]models.Task, error) {
	status := models.TaskStatusPending
	filter.Status = &status

	query := r.roleQuery(filter)
	for _, p := range preload {
		query = query.Preload(p)
	}

	var tasks []models.Task
	if err := query.Order("tasks.due_date ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ReminderCandidates finds pending, unreminded tasks due within the window
func (r *GormTaskRepository) ReminderCandidates(from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Preload("AssignedTo").
		Where("status = ?", models.TaskStatusPending).
		Where("reminder_sent = ?", false).
		Where("due_date >= ? AND due_date <= ?", from, to).
		Find(&tasks).Error
	return tasks, err
}

// MarkReminderSent flags a task's reminder as sent
func (r *GormTaskRepository) MarkReminderSent(taskID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("reminder_sent", true).Error
}

// MarkOverdue flips all pending tasks past due to overdue. The status
// predicate excludes tasks completed between read and write, so concurrent
// user updates cannot be clobbered.
func (r *GormTaskRepository) MarkOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("status = ?", models.TaskStatusPending).
		Where("due_date < ?", now).
		Update("status", models.TaskStatusOverdue)
	return result.RowsAffected, result.Error
}

func (r *GormTaskRepository) roleQuery(filter RoleFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})

	switch filter.Role {
	case RoleCreator:
		query = query.Where("tasks.created_by_id = ?", filter.UserID)
	case RoleAssignee:
		query = query.Where("tasks.assigned_to_id = ?", filter.UserID)
	case RoleEither:
		query = query.Where("tasks.created_by_id = ? OR tasks.assigned_to_id = ?", filter.UserID, filter.UserID)
	}

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.OrganizationID != nil {
		query = query.Where("tasks.organization_id = ?", *filter.OrganizationID)
	}

	return query
}
