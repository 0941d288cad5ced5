package authz

import (
	"testing"

	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/stretchr/testify/require"
)

func staffUser(id uint64, role models.UserType) *models.User {
	return &models.User{ID: id, UserType: role}
}

func portalAdmin(id uint64, role models.AdminRole, parentID *uint64) *models.Admin {
	return &models.Admin{ID: id, Role: role, ParentAdminID: parentID}
}

func TestStaffRoleChecks(t *testing.T) {
	require.True(t, CanAssignTasks(models.UserTypeAdmin))
	require.True(t, CanAssignTasks(models.UserTypeAssistant))
	require.False(t, CanAssignTasks(models.UserTypeEmployee))

	require.True(t, CanAdministerTasks(models.UserTypeAssistant))
	require.False(t, CanAdministerTasks(models.UserTypeEmployee))

	// Incentives and user management stay admin-only even for assistants.
	require.True(t, CanManageIncentives(models.UserTypeAdmin))
	require.False(t, CanManageIncentives(models.UserTypeAssistant))
	require.True(t, CanManageUsers(models.UserTypeAdmin))
	require.False(t, CanManageUsers(models.UserTypeAssistant))

	require.True(t, CanViewUsers(models.UserTypeAssistant))
	require.False(t, CanViewUsers(models.UserTypeEmployee))
}

func TestCanTouchTask(t *testing.T) {
	assignerID := uint64(7)
	task := &models.Task{ID: 1, UserID: 2, AssignedBy: &assignerID}

	require.True(t, CanTouchTask(staffUser(2, models.UserTypeEmployee), task).Allowed)
	require.True(t, CanTouchTask(staffUser(7, models.UserTypeEmployee), task).Allowed)
	require.True(t, CanTouchTask(staffUser(99, models.UserTypeAdmin), task).Allowed)

	d := CanTouchTask(staffUser(3, models.UserTypeEmployee), task)
	require.False(t, d.Allowed)
	require.NotEmpty(t, d.Reason)
}

func TestCanDeleteUser(t *testing.T) {
	admin := staffUser(1, models.UserTypeAdmin)

	require.True(t, CanDeleteUser(admin, staffUser(2, models.UserTypeEmployee)).Allowed)
	require.False(t, CanDeleteUser(admin, admin).Allowed)
	require.False(t, CanDeleteUser(admin, staffUser(2, models.UserTypeAdmin)).Allowed)
	require.False(t, CanDeleteUser(staffUser(3, models.UserTypeAssistant), staffUser(2, models.UserTypeEmployee)).Allowed)
}

func TestCanActOnAdmin(t *testing.T) {
	mainID := uint64(1)
	otherMainID := uint64(9)
	main := portalAdmin(mainID, models.AdminRoleMain, nil)
	subA := portalAdmin(2, models.AdminRoleSub, &mainID)
	subB := portalAdmin(3, models.AdminRoleSub, &mainID)
	subOther := portalAdmin(4, models.AdminRoleSub, &otherMainID)
	manager := portalAdmin(5, models.AdminRoleManager, nil)

	// Main admin reaches every account including itself.
	require.True(t, CanActOnAdmin(main, subA).Allowed)
	require.True(t, CanActOnAdmin(main, manager).Allowed)
	require.True(t, CanActOnAdmin(main, main).Allowed)

	// Sub-admins reach themselves and same-parent siblings only.
	require.True(t, CanActOnAdmin(subA, subA).Allowed)
	require.True(t, CanActOnAdmin(subA, subB).Allowed)
	require.False(t, CanActOnAdmin(subA, subOther).Allowed)
	require.False(t, CanActOnAdmin(subA, manager).Allowed)

	// The main-admin shield wins over the sibling rule.
	require.False(t, CanActOnAdmin(subA, main).Allowed)
	require.False(t, CanActOnAdmin(manager, main).Allowed)

	// Managers are self-scoped.
	require.True(t, CanActOnAdmin(manager, manager).Allowed)
	require.False(t, CanActOnAdmin(manager, subA).Allowed)
}

func TestCanDeleteAdmin(t *testing.T) {
	mainID := uint64(1)
	main := portalAdmin(mainID, models.AdminRoleMain, nil)
	sub := portalAdmin(2, models.AdminRoleSub, &mainID)

	require.True(t, CanDeleteAdmin(main, sub).Allowed)
	require.False(t, CanDeleteAdmin(main, main).Allowed)
	require.False(t, CanDeleteAdmin(main, portalAdmin(9, models.AdminRoleMain, nil)).Allowed)
	require.False(t, CanDeleteAdmin(sub, portalAdmin(3, models.AdminRoleSub, &mainID)).Allowed)
}

func TestCanTouchAdminTask(t *testing.T) {
	task := &models.AdminTask{ID: 1, AssignedTo: 5, AssignedBy: 6}

	require.True(t, CanTouchAdminTask(portalAdmin(5, models.AdminRoleManager, nil), task).Allowed)
	require.True(t, CanTouchAdminTask(portalAdmin(6, models.AdminRoleManager, nil), task).Allowed)
	require.True(t, CanTouchAdminTask(portalAdmin(1, models.AdminRoleMain, nil), task).Allowed)
	require.False(t, CanTouchAdminTask(portalAdmin(7, models.AdminRoleManager, nil), task).Allowed)
}
