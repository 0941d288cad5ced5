package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/dto"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers for the staff portal.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task owned by the caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		WeekStart   string `json:"week_start"`
		Priority    string `json:"priority"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	week, ok := parseWeekStart(c, req.WeekStart)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		WeekStart:   week,
		Priority:    models.TaskPriority(req.Priority),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// AssignTask creates a task for another user with the caller as assigner.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AssignTaskRequest struct {
		UserID      uint64 `json:"user_id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		WeekStart   string `json:"week_start"`
		Priority    string `json:"priority"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	week, ok := parseWeekStart(c, req.WeekStart)
	if !ok {
		return
	}

	task, err := h.taskService.AssignTask(user, services.AssignTaskInput{
		AssigneeID:  req.UserID,
		Title:       req.Title,
		Description: req.Description,
		WeekStart:   week,
		Priority:    models.TaskPriority(req.Priority),
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListTasks returns the caller's tasks, plus assigned-out tasks for elevated
// roles, optionally filtered to one week bucket.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(user, week)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListAllTasks returns every task with owner annotations.
func (h *TaskHandler) ListAllTasks(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListAllTasks(user)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTaskDetails returns one task with owner and assigner annotations.
func (h *TaskHandler) GetTaskDetails(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskDetails(user, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus transitions a task among the three statuses.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(user, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CompleteTask marks one of the caller's own tasks as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskService.CompleteOwn(user, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update; absent fields are untouched and an
// empty week_start clears the bucket.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		WeekStart   *string `json:"week_start"`
		Priority    *string `json:"priority"`
		UserID      *uint64 `json:"user_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     req.UserID,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.WeekStart != nil {
		if *req.WeekStart == "" {
			input.ClearWeekStart = true
		} else {
			week, ok := parseWeekStart(c, *req.WeekStart)
			if !ok {
				return
			}
			input.WeekStart = week
		}
	}

	task, err := h.taskService.UpdateFields(user, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(user, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// GetAnalytics returns completion totals and the per-user breakdown.
func (h *TaskHandler) GetAnalytics(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}

	analytics, err := h.taskService.GetAnalytics(user, week)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, analytics)
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// parseWeekStart parses a week bucket from a request body; empty means unset.
func parseWeekStart(c *gin.Context, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	week, err := time.Parse(constants.WeekStartLayout, raw)
	if err != nil {
		apierrors.BadRequest(c, "week_start must be formatted as YYYY-MM-DD")
		return nil, false
	}
	return &week, true
}

// parseWeekQuery parses the optional week_start query filter.
func parseWeekQuery(c *gin.Context) (*time.Time, bool) {
	return parseWeekStart(c, c.Query("week_start"))
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrEmptyPatch):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Title must be at most %d characters", constants.MaxTitleLength))
	case errors.Is(err, services.ErrDescriptionTooLong):
		apierrors.BadRequest(c, fmt.Sprintf("Description must be at most %d characters", constants.MaxDescriptionLength))
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound), errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
