package models

import "time"

// AdminTask is a manager-to-manager work item in the admin portal. Unlike the
// staff Task it always records both ends of the assignment.
type AdminTask struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Title       string       `gorm:"type:varchar(200);not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	AssignedTo  uint64       `gorm:"not null;index" json:"assigned_to"`
	AssignedBy  uint64       `gorm:"not null;index" json:"assigned_by"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	WeekStart   *time.Time   `gorm:"type:date" json:"week_start"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `json:"created_at"`

	// Relations
	Assignee Admin `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Assigner Admin `gorm:"foreignKey:AssignedBy" json:"assigner,omitempty"`
}
