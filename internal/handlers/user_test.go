package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"github.com/staffdesk/incentive-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db      *gorm.DB
	handler *UserHandler
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db := setupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, testSecret, 0)

	return userTestEnv{
		db:      db,
		handler: NewUserHandler(authService),
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	env := setupUserTestEnv(t)
	assistant := createTestUser(t, env.db, "assistant", models.UserTypeAssistant)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	r := authedRouter(assistant)
	r.GET("/api/users", env.handler.ListUsers)
	w := doJSON(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	require.NotContains(t, w.Body.String(), "password")

	// Employees have no directory access.
	r = authedRouter(employee)
	r.GET("/api/users", env.handler.ListUsers)
	w = doJSON(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_GetUserStats(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	assistant := createTestUser(t, env.db, "assistant", models.UserTypeAssistant)
	createTestUser(t, env.db, "e1", models.UserTypeEmployee)
	createTestUser(t, env.db, "e2", models.UserTypeEmployee)

	r := authedRouter(admin)
	r.GET("/api/users/stats", env.handler.GetUserStats)
	w := doJSON(t, r, http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Employees  int64 `json:"employees"`
		Assistants int64 `json:"assistants"`
		Admins     int64 `json:"admins"`
		Total      int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(2), stats.Employees)
	require.Equal(t, int64(1), stats.Assistants)
	require.Equal(t, int64(1), stats.Admins)
	require.Equal(t, int64(4), stats.Total)

	// Stats stay admin-only; assistants see the directory but not headcounts.
	r = authedRouter(assistant)
	r.GET("/api/users/stats", env.handler.GetUserStats)
	w = doJSON(t, r, http.MethodGet, "/api/users/stats", nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	env := setupUserTestEnv(t)
	admin := createTestUser(t, env.db, "admin", models.UserTypeAdmin)
	otherAdmin := createTestUser(t, env.db, "admin2", models.UserTypeAdmin)
	employee := createTestUser(t, env.db, "employee", models.UserTypeEmployee)

	taskRepo := repository.NewTaskRepository(env.db)
	taskService := services.NewTaskService(taskRepo, repository.NewUserRepository(env.db))
	task, err := taskService.CreateTask(services.CreateTaskInput{
		OwnerID: employee.ID,
		Title:   "Orphaned work",
	})
	require.NoError(t, err)

	r := authedRouter(admin)
	r.DELETE("/api/users/:id", env.handler.DeleteUser)

	// Self-deletion and admin targets are refused.
	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", otherAdmin.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", employee.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The user's tasks go with the account.
	var count int64
	require.NoError(t, env.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count).Error)
	require.Equal(t, int64(0), count)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", employee.ID), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
