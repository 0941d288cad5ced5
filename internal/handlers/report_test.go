package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"github.com/staffdesk/incentive-api/internal/services"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_GetReport(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	incentiveRepo := repository.NewIncentiveRepository(db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	incentiveService := services.NewIncentiveService(incentiveRepo, userRepo)
	handler := NewReportHandler(services.NewReportService(taskRepo, incentiveRepo))

	admin := createTestUser(t, db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, db, "employee", models.UserTypeEmployee)

	for i := 0; i < 3; i++ {
		task, err := taskService.CreateTask(services.CreateTaskInput{
			OwnerID: employee.ID,
			Title:   "work",
		})
		require.NoError(t, err)
		if i == 0 {
			_, err = taskService.UpdateStatus(admin, task.ID, models.TaskStatusCompleted)
			require.NoError(t, err)
		}
	}

	_, err := incentiveService.Create(admin, services.CreateIncentiveInput{
		UserID: employee.ID,
		Kind:   models.IncentiveBonus,
		Amount: mustDecimal(t, "100.50"),
		Reason: "great work",
	})
	require.NoError(t, err)
	_, err = incentiveService.Create(admin, services.CreateIncentiveInput{
		UserID: employee.ID,
		Kind:   models.IncentiveBonus,
		Amount: mustDecimal(t, "49.50"),
		Reason: "more great work",
	})
	require.NoError(t, err)

	r := authedRouter(admin)
	r.GET("/api/reports", handler.GetReport)
	w := doJSON(t, r, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Tasks struct {
			Total     int64 `json:"total"`
			Completed int64 `json:"completed"`
			Pending   int64 `json:"pending"`
		} `json:"tasks"`
		Incentives struct {
			BonusCount     int64  `json:"bonusCount"`
			BonusTotal     string `json:"bonusTotal"`
			DeductionCount int64  `json:"deductionCount"`
			DeductionTotal string `json:"deductionTotal"`
		} `json:"incentives"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	require.Equal(t, int64(3), report.Tasks.Total)
	require.Equal(t, int64(1), report.Tasks.Completed)
	require.Equal(t, int64(2), report.Tasks.Pending)
	require.Equal(t, int64(2), report.Incentives.BonusCount)
	require.Equal(t, "150", report.Incentives.BonusTotal)
	require.Equal(t, int64(0), report.Incentives.DeductionCount)
	require.Equal(t, "0", report.Incentives.DeductionTotal)

	// The report stays admin-only.
	r = authedRouter(employee)
	r.GET("/api/reports", handler.GetReport)
	w = doJSON(t, r, http.MethodGet, "/api/reports", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}
