package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAssigneeNotManager = errors.New("can only assign tasks to managers")
	ErrManagerAccessReq   = errors.New("manager or main admin access required")
)

// AdminTaskService handles manager-to-manager task assignment in the admin
// portal.
type AdminTaskService struct {
	taskRepo  repository.AdminTaskRepository
	adminRepo repository.AdminRepository
}

// NewAdminTaskService creates a new AdminTaskService.
func NewAdminTaskService(taskRepo repository.AdminTaskRepository, adminRepo repository.AdminRepository) *AdminTaskService {
	return &AdminTaskService{
		taskRepo:  taskRepo,
		adminRepo: adminRepo,
	}
}

// AssignInput represents input for a manager task assignment.
type AssignInput struct {
	AssigneeID  uint64
	Title       string
	Description string
	WeekStart   *time.Time
	Priority    models.TaskPriority
}

// Assign creates a portal task. Only managers and the main admin assign, and
// the assignee must itself be a manager.
func (s *AdminTaskService) Assign(assigner *models.Admin, input AssignInput) (*models.AdminTask, error) {
	if !authz.CanAssignManagerTasks(assigner.Role) {
		return nil, forbidden("only managers and main admin can assign tasks to managers")
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	assignee, err := s.adminRepo.FindByID(input.AssigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find assignee: %w", err)
	}
	if assignee.Role != models.AdminRoleManager {
		return nil, ErrAssigneeNotManager
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.AdminTask{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		AssignedTo:  assignee.ID,
		AssignedBy:  assigner.ID,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		WeekStart:   input.WeekStart,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Assigner")
}

// List returns tasks where the actor is assignee or assigner, managers and
// the main admin only.
func (s *AdminTaskService) List(actor *models.Admin, week *time.Time) ([]models.AdminTask, error) {
	if !authz.CanAssignManagerTasks(actor.Role) {
		return nil, forbidden(ErrManagerAccessReq.Error())
	}
	tasks, err := s.taskRepo.ListForAdmin(actor.ID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus transitions a portal task; the assignee, the assigner, and the
// main admin are permitted, with the same completion-timestamp coupling as
// staff tasks.
func (s *AdminTaskService) UpdateStatus(actor *models.Admin, taskID uint64, status models.TaskStatus) (*models.AdminTask, error) {
	status = models.TaskStatus(strings.ToLower(string(status)))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if d := authz.CanTouchAdminTask(actor, task); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	task.Status = status
	if status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Assigner")
}
