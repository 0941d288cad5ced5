package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"github.com/staffdesk/incentive-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type incentiveTestEnv struct {
	db               *gorm.DB
	handler          *IncentiveHandler
	incentiveService *services.IncentiveService
}

func setupIncentiveTestEnv(t *testing.T) incentiveTestEnv {
	t.Helper()

	db := setupTestDB(t)
	incentiveRepo := repository.NewIncentiveRepository(db)
	userRepo := repository.NewUserRepository(db)
	incentiveService := services.NewIncentiveService(incentiveRepo, userRepo)
	handler := NewIncentiveHandler(incentiveService)

	return incentiveTestEnv{
		db:               db,
		handler:          handler,
		incentiveService: incentiveService,
	}
}

func TestIncentiveHandler_CreateIncentive(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	r := authedRouter(admin)
	r.POST("/api/incentives", env.handler.CreateIncentive)

	w := doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": employee.ID,
		"type":    "bonus",
		"amount":  "150.50",
		"reason":  "Great sprint",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		UserID    uint64 `json:"user_id"`
		Kind      string `json:"type"`
		Amount    string `json:"amount"`
		CreatedBy uint64 `json:"created_by"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, employee.ID, response.UserID)
	require.Equal(t, "bonus", response.Kind)
	require.Equal(t, "150.5", response.Amount)
	require.Equal(t, admin.ID, response.CreatedBy)
}

func TestIncentiveHandler_CreateIncentiveValidation(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	r := authedRouter(admin)
	r.POST("/api/incentives", env.handler.CreateIncentive)

	// Zero and negative amounts are rejected for both kinds.
	for _, amount := range []string{"0", "-5"} {
		w := doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
			"user_id": employee.ID,
			"type":    "deduction",
			"amount":  amount,
			"reason":  "adjustment",
		})
		require.Equal(t, http.StatusBadRequest, w.Code, "amount %s", amount)
	}

	// The smallest representable amount is accepted.
	w := doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": employee.ID,
		"type":    "deduction",
		"amount":  "0.01",
		"reason":  "adjustment",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Unknown kind.
	w = doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": employee.ID,
		"type":    "penalty",
		"amount":  "10",
		"reason":  "adjustment",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Blank reason.
	w = doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": employee.ID,
		"type":    "bonus",
		"amount":  "10",
		"reason":  "   ",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown target user.
	w = doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": 9999,
		"type":    "bonus",
		"amount":  "10",
		"reason":  "adjustment",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestIncentiveHandler_CreateIncentiveForbidden(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	assistant := createTestUser(t, env.db, "assistant", models.UserTypeAssistant)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	r := authedRouter(assistant)
	r.POST("/api/incentives", env.handler.CreateIncentive)

	w := doJSON(t, r, http.MethodPost, "/api/incentives", map[string]interface{}{
		"user_id": employee.ID,
		"type":    "bonus",
		"amount":  "10",
		"reason":  "nice try",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestIncentiveHandler_ListMyIncentivesNewestFirst(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	for _, reason := range []string{"first", "second", "third"} {
		_, err := env.incentiveService.Create(admin, services.CreateIncentiveInput{
			UserID: employee.ID,
			Kind:   models.IncentiveBonus,
			Amount: mustDecimal(t, "10"),
			Reason: reason,
		})
		require.NoError(t, err)
	}

	r := authedRouter(employee)
	r.GET("/api/incentives/me", env.handler.ListMyIncentives)
	w := doJSON(t, r, http.MethodGet, "/api/incentives/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response []struct {
		Reason        string `json:"reason"`
		CreatedByName string `json:"created_by_name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 3)
	require.Equal(t, "third", response[0].Reason)
	require.Equal(t, "first", response[2].Reason)
	require.Equal(t, "admin", response[0].CreatedByName)
}

func TestIncentiveHandler_ListUserIncentivesScope(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)
	nosy := createTestUser(t, env.db, "nosy", models.UserTypeEmployee)

	_, err := env.incentiveService.Create(admin, services.CreateIncentiveInput{
		UserID: employee.ID,
		Kind:   models.IncentiveBonus,
		Amount: mustDecimal(t, "10"),
		Reason: "bonus",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/users/%d/incentives", employee.ID)

	// Another employee cannot read someone else's ledger.
	r := authedRouter(nosy)
	r.GET("/api/users/:id/incentives", env.handler.ListUserIncentives)
	w := doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The admin can.
	r = authedRouter(admin)
	r.GET("/api/users/:id/incentives", env.handler.ListUserIncentives)
	w = doJSON(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIncentiveHandler_DeleteIncentive(t *testing.T) {
	env := setupIncentiveTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	incentive, err := env.incentiveService.Create(admin, services.CreateIncentiveInput{
		UserID: employee.ID,
		Kind:   models.IncentiveDeduction,
		Amount: mustDecimal(t, "25"),
		Reason: "late report",
	})
	require.NoError(t, err)

	r := authedRouter(employee)
	r.DELETE("/api/incentives/:id", env.handler.DeleteIncentive)
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/incentives/%d", incentive.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	r = authedRouter(admin)
	r.DELETE("/api/incentives/:id", env.handler.DeleteIncentive)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/incentives/%d", incentive.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/incentives/%d", incentive.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
