package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTitleRequired      = errors.New("title required")
	ErrTitleTooLong       = errors.New("title too long")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrEmptyPatch         = errors.New("nothing to update")
	ErrTaskNotFound       = errors.New("task not found")
	ErrAssigneeNotFound   = errors.New("assignee not found")
)

// TaskService handles the task lifecycle for the staff portal.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a self-owned task.
type CreateTaskInput struct {
	OwnerID     uint64
	Title       string
	Description string
	WeekStart   *time.Time
	Priority    models.TaskPriority
}

// CreateTask creates a task owned by the caller, with no assigner.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		UserID:      input.OwnerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		WeekStart:   input.WeekStart,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// AssignTaskInput represents input for assigning a task to another user.
type AssignTaskInput struct {
	AssigneeID  uint64
	Title       string
	Description string
	WeekStart   *time.Time
	Priority    models.TaskPriority
}

// AssignTask creates a task owned by the assignee with the assigner recorded.
func (s *TaskService) AssignTask(assigner *models.User, input AssignTaskInput) (*models.Task, error) {
	if !authz.CanAssignTasks(assigner.UserType) {
		return nil, forbidden("admin or assistant access required")
	}
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if _, err := s.userRepo.FindByID(input.AssigneeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssigneeNotFound
		}
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}

	assignerID := assigner.ID
	task := &models.Task{
		UserID:      input.AssigneeID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Status:      models.TaskStatusPending,
		Priority:    priority,
		WeekStart:   input.WeekStart,
		AssignedBy:  &assignerID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to assign task: %w", err)
	}
	return task, nil
}

// UpdateStatus transitions a task among the three statuses. Transitions are
// deliberately unrestricted for authorized actors; entering completed stamps
// the completion time and leaving it clears it.
func (s *TaskService) UpdateStatus(requester *models.User, taskID uint64, status models.TaskStatus) (*models.Task, error) {
	status = models.TaskStatus(strings.ToLower(string(status)))
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanTouchTask(requester, task); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	applyStatus(task, status)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	return task, nil
}

// CompleteOwn marks a task owned by the requester as completed. Tasks not
// owned by the requester report not-found, matching the read scope.
func (s *TaskService) CompleteOwn(requester *models.User, taskID uint64) (*models.Task, error) {
	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != requester.ID {
		return nil, ErrTaskNotFound
	}

	applyStatus(task, models.TaskStatusCompleted)

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput is a partial patch; nil fields are untouched.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	WeekStart      *time.Time
	ClearWeekStart bool
	Priority       *models.TaskPriority
	OwnerID        *uint64
}

func (in UpdateTaskInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.WeekStart == nil &&
		!in.ClearWeekStart && in.Priority == nil && in.OwnerID == nil
}

// UpdateFields applies a partial update; same authorization as UpdateStatus.
func (s *TaskService) UpdateFields(requester *models.User, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.empty() {
		return nil, ErrEmptyPatch
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanTouchTask(requester, task); !d.Allowed {
		return nil, forbidden(d.Reason)
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		task.Description = *input.Description
	}
	if input.ClearWeekStart {
		task.WeekStart = nil
	} else if input.WeekStart != nil {
		task.WeekStart = input.WeekStart
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.OwnerID != nil {
		if _, err := s.userRepo.FindByID(*input.OwnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to verify owner: %w", err)
		}
		task.UserID = *input.OwnerID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks owned by the principal, plus tasks it assigned when
// it holds an assignment-capable role.
func (s *TaskService) ListTasks(principal *models.User, week *time.Time) ([]models.Task, error) {
	includeAssigned := authz.CanAssignTasks(principal.UserType)
	tasks, err := s.taskRepo.ListForPrincipal(principal.ID, includeAssigned, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListAllTasks returns every task with owner details, elevated roles only.
func (s *TaskService) ListAllTasks(requester *models.User) ([]models.Task, error) {
	if !authz.CanAdministerTasks(requester.UserType) {
		return nil, forbidden("admin or assistant access required")
	}
	tasks, err := s.taskRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTaskDetails returns one task with owner and assigner, elevated roles
// only.
func (s *TaskService) GetTaskDetails(requester *models.User, taskID uint64) (*models.Task, error) {
	if !authz.CanAdministerTasks(requester.UserType) {
		return nil, forbidden("admin or assistant access required")
	}
	task, err := s.taskRepo.FindByID(taskID, "Owner", "Assigner")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a task, elevated roles only.
func (s *TaskService) DeleteTask(requester *models.User, taskID uint64) error {
	if !authz.CanAdministerTasks(requester.UserType) {
		return forbidden("admin or assistant access required")
	}
	if _, err := s.findTask(taskID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AnalyticsTotals summarizes completion across all tasks in scope.
type AnalyticsTotals struct {
	Assigned       int64 `json:"assigned"`
	Completed      int64 `json:"completed"`
	CompletionRate int   `json:"completion_rate"`
}

// UserAnalytics is one user's slice of the breakdown.
type UserAnalytics struct {
	UserID         uint64 `json:"user_id"`
	Name           string `json:"name"`
	Assigned       int64  `json:"assigned"`
	Completed      int64  `json:"completed"`
	CompletionRate int    `json:"completion_rate"`
}

// Analytics holds the totals and the per-user breakdown.
type Analytics struct {
	Totals  AnalyticsTotals `json:"totals"`
	PerUser []UserAnalytics `json:"perUser"`
}

// GetAnalytics computes completion rates, optionally for one week bucket.
func (s *TaskService) GetAnalytics(requester *models.User, week *time.Time) (*Analytics, error) {
	if !authz.CanAdministerTasks(requester.UserType) {
		return nil, forbidden("admin or assistant access required")
	}

	assigned, completed, err := s.taskRepo.CountTotals(week)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	stats, err := s.taskRepo.StatsPerUser(week)
	if err != nil {
		return nil, fmt.Errorf("failed to compute per-user stats: %w", err)
	}

	result := &Analytics{
		Totals: AnalyticsTotals{
			Assigned:       assigned,
			Completed:      completed,
			CompletionRate: completionRate(completed, assigned),
		},
		PerUser: make([]UserAnalytics, len(stats)),
	}
	for i, st := range stats {
		result.PerUser[i] = UserAnalytics{
			UserID:         st.UserID,
			Name:           st.Name,
			Assigned:       st.Assigned,
			Completed:      st.Completed,
			CompletionRate: completionRate(st.Completed, st.Assigned),
		}
	}
	return result, nil
}

func (s *TaskService) findTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// applyStatus keeps completed_at strictly coupled to the completed status.
func applyStatus(task *models.Task, status models.TaskStatus) {
	task.Status = status
	if status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}

func completionRate(completed, assigned int64) int {
	if assigned == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(assigned) * 100))
}

func validateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTitleRequired
	}
	if len(trimmed) > constants.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > constants.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}
