package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/staffdesk/incentive-api/internal/errors"
	"github.com/staffdesk/incentive-api/internal/middleware"
	"github.com/staffdesk/incentive-api/internal/services"
)

// ReportHandler exposes the admin overview report.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GetReport returns task and incentive aggregates across the system.
func (h *ReportHandler) GetReport(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	report, err := h.reportService.GetReport(user)
	if err != nil {
		if errors.Is(err, services.ErrForbidden) {
			apierrors.Forbidden(c, err.Error())
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
