package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/dto"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/services"
)

// IncentiveHandler coordinates ledger-related HTTP handlers.
type IncentiveHandler struct {
	incentiveService *services.IncentiveService
}

// NewIncentiveHandler creates a new IncentiveHandler.
func NewIncentiveHandler(incentiveService *services.IncentiveService) *IncentiveHandler {
	return &IncentiveHandler{
		incentiveService: incentiveService,
	}
}

// CreateIncentive appends a bonus or deduction to a user's ledger.
func (h *IncentiveHandler) CreateIncentive(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateIncentiveRequest struct {
		UserID uint64          `json:"user_id" binding:"required"`
		Kind   string          `json:"type" binding:"required"`
		Amount decimal.Decimal `json:"amount"`
		Reason string          `json:"reason" binding:"required"`
	}

	var req CreateIncentiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	incentive, err := h.incentiveService.Create(user, services.CreateIncentiveInput{
		UserID: req.UserID,
		Kind:   models.IncentiveKind(req.Kind),
		Amount: req.Amount,
		Reason: req.Reason,
	})
	if err != nil {
		respondIncentiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncentiveDTO(*incentive))
}

// ListMyIncentives returns the caller's own ledger, newest first.
func (h *IncentiveHandler) ListMyIncentives(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	incentives, err := h.incentiveService.ListForUser(user.ID)
	if err != nil {
		respondIncentiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncentiveDTOs(incentives))
}

// ListUserIncentives returns another user's ledger; self always allowed,
// anyone else requires the incentive-management role.
func (h *IncentiveHandler) ListUserIncentives(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if targetID != user.ID && !authz.CanManageIncentives(user.UserType) {
		apierrors.Forbidden(c, "admin access required")
		return
	}

	incentives, err := h.incentiveService.ListForUser(targetID)
	if err != nil {
		respondIncentiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncentiveDTOs(incentives))
}

// ListAllIncentives returns the full ledger across users.
func (h *IncentiveHandler) ListAllIncentives(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	incentives, err := h.incentiveService.ListAll(user)
	if err != nil {
		respondIncentiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToIncentiveDTOs(incentives))
}

// DeleteIncentive removes a ledger entry.
func (h *IncentiveHandler) DeleteIncentive(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid incentive ID")
		return
	}

	if err := h.incentiveService.Delete(user, id); err != nil {
		respondIncentiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func respondIncentiveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidKind),
		errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrReasonRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrIncentiveNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
