package dto

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
)

// AdminDTO represents an admin-portal principal in API responses
type AdminDTO struct {
	ID            uint64           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Role          models.AdminRole `json:"role"`
	ParentAdminID *uint64          `json:"parent_admin_id"`
	ParentAdmin   *AdminRefDTO     `json:"parent_admin,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// AdminRefDTO is a short reference to another admin
type AdminRefDTO struct {
	ID    uint64           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Role  models.AdminRole `json:"role"`
}

// ToAdminDTO converts an Admin model to AdminDTO
func ToAdminDTO(admin models.Admin) AdminDTO {
	dto := AdminDTO{
		ID:            admin.ID,
		Name:          admin.Name,
		Email:         admin.Email,
		Role:          admin.Role,
		ParentAdminID: admin.ParentAdminID,
		CreatedAt:     admin.CreatedAt,
	}
	if admin.ParentAdmin != nil && admin.ParentAdmin.ID != 0 {
		ref := toAdminRefDTO(*admin.ParentAdmin)
		dto.ParentAdmin = &ref
	}
	return dto
}

// ToAdminDTOs converts a slice of admins
func ToAdminDTOs(admins []models.Admin) []AdminDTO {
	dtos := make([]AdminDTO, len(admins))
	for i, a := range admins {
		dtos[i] = ToAdminDTO(a)
	}
	return dtos
}

func toAdminRefDTO(admin models.Admin) AdminRefDTO {
	return AdminRefDTO{
		ID:    admin.ID,
		Name:  admin.Name,
		Email: admin.Email,
		Role:  admin.Role,
	}
}

// AdminTaskDTO represents a portal task in API responses
type AdminTaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority"`
	WeekStart   *time.Time          `json:"week_start"`
	CompletedAt *time.Time          `json:"completed_at"`
	CreatedAt   time.Time           `json:"created_at"`
	Assignee    *AdminRefDTO        `json:"assignedTo,omitempty"`
	Assigner    *AdminRefDTO        `json:"assignedBy,omitempty"`
}

// ToAdminTaskDTO converts an AdminTask model to AdminTaskDTO
func ToAdminTaskDTO(task models.AdminTask) AdminTaskDTO {
	dto := AdminTaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		WeekStart:   task.WeekStart,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
	}
	if task.Assignee.ID != 0 {
		ref := toAdminRefDTO(task.Assignee)
		dto.Assignee = &ref
	}
	if task.Assigner.ID != 0 {
		ref := toAdminRefDTO(task.Assigner)
		dto.Assigner = &ref
	}
	return dto
}

// ToAdminTaskDTOs converts a slice of portal tasks
func ToAdminTaskDTOs(tasks []models.AdminTask) []AdminTaskDTO {
	dtos := make([]AdminTaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToAdminTaskDTO(t)
	}
	return dtos
}
