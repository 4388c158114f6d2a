package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination
const (
	MinPage      = 1
	MaxPageSize  = 100
	TaskPageSize = 20
	UserPageSize = 50
)

// AI task generation
const (
	MaxAIGeneratedTasks = 10
)

// Auth
const (
	MinPasswordLength = 6
	TokenLifetime     = 7 * 24 * time.Hour
)

// Invite codes
const (
	InviteCodeBytes       = 4
	InviteCodeMaxAttempts = 5
)

// Reminder sweep
const (
	SweepInterval  = time.Hour
	ReminderWindow = 24 * time.Hour
)
