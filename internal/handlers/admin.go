package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/dto"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/services"
)

// AdminHandler coordinates admin-portal account HTTP handlers.
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// Login authenticates a portal account and returns a portal-scoped token.
func (h *AdminHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	admin, signed, err := h.adminService.Login(req.Email, req.Password)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin": dto.ToAdminDTO(*admin),
		"token": signed,
	})
}

// GetProfile returns the authenticated admin with its parent resolved.
func (h *AdminHandler) GetProfile(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.adminService.GetProfile(admin.ID)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDTO(*profile))
}

// ListSubAdmins returns the sub-admins visible to the caller.
func (h *AdminHandler) ListSubAdmins(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	admins, err := h.adminService.ListSubAdmins(admin)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDTOs(admins))
}

// CreateSubAdmin creates a sub-admin under the acting main admin.
func (h *AdminHandler) CreateSubAdmin(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateSubAdminRequest struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req CreateSubAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.adminService.CreateSubAdmin(admin, services.CreateSubAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdminDTO(*created))
}

// UpdateAdmin patches an account within the caller's scope.
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseAdminID(c)
	if !ok {
		return
	}

	type UpdateAdminRequest struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	var req UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.adminService.UpdateAdmin(admin, targetID, services.UpdateAdminInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAdminDTO(*updated))
}

// DeleteAdmin removes an account, main admin only.
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	admin, exists := middleware.GetAdmin(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	targetID, ok := parseAdminID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteAdmin(admin, targetID); err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin deleted successfully",
	})
}

func parseAdminID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid admin ID")
		return 0, false
	}
	return id, true
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrAdminFieldsReq):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrAdminNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, err)
	}
}
