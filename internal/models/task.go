package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusOverdue   TaskStatus = "overdue"
)

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	DueDate        time.Time      `gorm:"not null" json:"dueDate"`
	Priority       TaskPriority   `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReminderSent   bool           `gorm:"not null;default:false" json:"reminderSent"`
	AssignedToID   uint64         `gorm:"not null" json:"assignedTo"`
	CreatedByID    uint64         `gorm:"not null" json:"createdBy"`
	OrganizationID *uint64        `json:"organization"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedTo   User          `gorm:"foreignKey:AssignedToID" json:"-"`
	CreatedBy    User          `gorm:"foreignKey:CreatedByID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// ValidPriority reports whether p is one of the known priority levels.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatusTransition reports whether a user-initiated update may move a
// task from one status to another. Same-status writes are no-ops and always
// allowed. Overdue is only reachable through the reminder sweep, and
// completed tasks are never reverted.
func ValidStatusTransition(from, to TaskStatus) bool {
	if from == to {
		return true
	}
	switch {
	case to == TaskStatusCompleted && (from == TaskStatusPending || from == TaskStatusOverdue):
		return true
	}
	return false
}
