package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/dto"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/services"
)

// AdminTaskHandler coordinates manager task HTTP handlers in the admin portal.
type AdminTaskHandler struct {
	taskService *services.AdminTaskService
}

// NewAdminTaskHandler creates a new AdminTaskHandler.
func NewAdminTaskHandler(taskService *services.AdminTaskService) *AdminTaskHandler {
	return &AdminTaskHandler{
		taskService: taskService,
	}
}

// AssignTask creates a portal task for a manager.
func (h *AdminTaskHandler) AssignTask(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AssignTaskRequest struct {
		AssignedTo  uint64 `json:"assignedTo" binding:"required"`
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

	task, err := h.taskService.Assign(admin, services.AssignInput{
		AssigneeID:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		WeekStart:   week,
		Priority:    models.TaskPriority(req.Priority),
	})
	if err != nil {
		respondAdminTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdminTaskDTO(*task))
}

// ListTasks returns portal tasks where the caller is assignee or assigner.
func (h *AdminTaskHandler) ListTasks(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	week, ok := parseWeekQuery(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(admin, week)
	if err != nil {
		respondAdminTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminTaskDTOs(tasks))
}

// UpdateStatus transitions a portal task.
func (h *AdminTaskHandler) UpdateStatus(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
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

	task, err := h.taskService.UpdateStatus(admin, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondAdminTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminTaskDTO(*task))
}

func respondAdminTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrDescriptionTooLong),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrAssigneeNotManager):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
