package repository

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
)

// UserTaskStats is one row of the per-user analytics breakdown.
type UserTaskStats struct {
	UserID    uint64 `json:"user_id"`
	Name      string `json:"name"`
	Assigned  int64  `json:"assigned"`
	Completed int64  `json:"completed"`
}

// IncentiveKindStats aggregates the ledger per kind for the admin report.
type IncentiveKindStats struct {
	Kind  models.IncentiveKind `json:"type"`
	Count int64                `json:"count"`
	Total string               `json:"total"`
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by lowercased email
	FindByEmail(email string) (*models.User, error)

	// ListAll lists every user, newest first
	ListAll() ([]models.User, error)

	// CountByType counts users grouped by role
	CountByType() (map[models.UserType]int64, error)

	// Delete hard deletes a user; tasks cascade, assigner refs are nulled
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListForPrincipal lists tasks owned by userID, plus tasks assigned by
	// userID when includeAssigned is set, newest first
	ListForPrincipal(userID uint64, includeAssigned bool, week *time.Time) ([]models.Task, error)

	// ListAll lists every task with its owner, newest first
	ListAll() ([]models.Task, error)

	// Update persists a modified task
	Update(task *models.Task) error

	// Delete hard deletes a task
	Delete(id uint64) error

	// CountTotals returns assigned and completed counts, optionally scoped
	// to one week bucket
	CountTotals(week *time.Time) (assigned, completed int64, err error)

	// StatsPerUser returns the per-user breakdown ordered by name ascending
	StatsPerUser(week *time.Time) ([]UserTaskStats, error)

	// CountByStatus counts tasks grouped by status
	CountByStatus() (map[models.TaskStatus]int64, error)
}

// IncentiveRepository defines the interface for incentive ledger access
type IncentiveRepository interface {
	// Create appends a ledger entry
	Create(incentive *models.Incentive) error

	// FindByID finds an entry by ID
	FindByID(id uint64) (*models.Incentive, error)

	// ListForUser lists a user's entries newest first, with target and
	// creator preloaded
	ListForUser(userID uint64) ([]models.Incentive, error)

	// ListAll lists every entry newest first, with target and creator
	// preloaded
	ListAll() ([]models.Incentive, error)

	// Delete removes an entry
	Delete(id uint64) error

	// SumByKind aggregates count and amount per kind
	SumByKind() ([]IncentiveKindStats, error)
}

// AdminRepository defines the interface for admin-portal principal access
type AdminRepository interface {
	// Create creates a new admin
	Create(admin *models.Admin) error

	// FindByID finds an admin by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Admin, error)

	// FindByEmail finds an admin by lowercased email
	FindByEmail(email string) (*models.Admin, error)

	// ListSubAdmins lists sub-admins, scoped to one parent when parentID is
	// non-nil, newest first
	ListSubAdmins(parentID *uint64) ([]models.Admin, error)

	// Update persists a modified admin
	Update(admin *models.Admin) error

	// Delete removes an admin
	Delete(id uint64) error
}

// AdminTaskRepository defines the interface for admin-portal task access
type AdminTaskRepository interface {
	// Create creates a new portal task
	Create(task *models.AdminTask) error

	// FindByID finds a portal task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.AdminTask, error)

	// ListForAdmin lists tasks where the admin is assignee or assigner,
	// newest first
	ListForAdmin(adminID uint64, week *time.Time) ([]models.AdminTask, error)

	// Update persists a modified portal task
	Update(task *models.AdminTask) error
}
