package repository

import (
	"time"

	"github.com/taskpal/taskpal-api/internal/models"
	"github.com/taskpal/taskpal-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email. Emails are stored lowercased, so
	// callers must normalize before lookup.
	FindByEmail(email string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error

	// ListByOrganization lists users belonging to an organization, sorted by
	// name, paginated.
	ListByOrganization(organizationID uint64, params utils.PaginationParams) ([]models.User, int64, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithAdmin creates an organization, its admin membership, and
	// activates it for the admin within a single transaction.
	CreateWithAdmin(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByInviteCode finds an organization by its normalized invite code
	FindByInviteCode(code string) (*models.Organization, error)

	// AddMemberAndActivate appends a member to the organization and sets it
	// as the user's active organization within a single transaction.
	AddMemberAndActivate(organizationID, userID uint64) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.OrganizationMember, error)

	// ListMembershipsByUserID lists all organizations a user belongs to,
	// with the organization and its admin preloaded.
	ListMembershipsByUserID(userID uint64) ([]models.OrganizationMember, error)

	// ListMembers lists all members of an organization with users preloaded
	ListMembers(organizationID uint64) ([]models.OrganizationMember, error)

	// CountMembers counts the members of an organization
	CountMembers(organizationID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks with filtering and pagination, sorted by
	// ascending due date
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// CountByRole counts tasks matching a dashboard role filter
	CountByRole(filter RoleFilter) (int64, error)

	// ListPendingByRole lists pending tasks for a dashboard role filter,
	// sorted by ascending due date, with the counterparty preloaded.
	ListPendingByRole(filter RoleFilter, preload ...string) ([]models.Task, error)

	// ReminderCandidates finds pending tasks with no reminder sent and a due
	// date inside [from, to], with the assignee preloaded.
	ReminderCandidates(from, to time.Time) ([]models.Task, error)

	// MarkReminderSent flags a task's reminder as sent
	MarkReminderSent(taskID uint64) error

	// MarkOverdue flips all pending tasks past due to overdue in one bulk
	// update and reports how many rows changed.
	MarkOverdue(now time.Time) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationID *uint64
	Status         *models.TaskStatus
	Priority       *models.TaskPriority
	AssignedToID   *uint64
	Page           int
	PageSize       int
}

// TaskRole selects which side of a task a dashboard query counts.
type TaskRole int

const (
	// RoleCreator matches tasks the user created
	RoleCreator TaskRole = iota
	// RoleAssignee matches tasks assigned to the user
	RoleAssignee
	// RoleEither matches tasks the user created or is assigned to
	RoleEither
)

// RoleFilter scopes a dashboard query to a user, role, and optionally a
// status and organization.
type RoleFilter struct {
	UserID         uint64
	Role           TaskRole
	Status         *models.TaskStatus
	OrganizationID *uint64
}
