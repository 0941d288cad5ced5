package dto

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64              `json:"id"`
	UserID      uint64              `json:"user_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	WeekStart   *time.Time          `json:"week_start"`
	AssignedBy  *uint64             `json:"assigned_by"`
	CompletedAt *time.Time          `json:"completed_at"`
	CreatedAt   time.Time           `json:"created_at"`

	// Owner and assigner annotations, present on elevated views only.
	UserName       string `json:"user_name,omitempty"`
	UserEmail      string `json:"user_email,omitempty"`
	AssignedByName string `json:"assigned_by_name,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO, annotating owner and assigner
// when they were preloaded.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		WeekStart:   task.WeekStart,
		AssignedBy:  task.AssignedBy,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
	}

	if task.Owner.ID != 0 {
		dto.UserName = task.Owner.Name
		dto.UserEmail = task.Owner.Email
	}
	if task.Assigner != nil && task.Assigner.ID != 0 {
		dto.AssignedByName = task.Assigner.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
