// Package authz is the single decision point for role checks. Every rule is a
// pure function of the principal's role/scope and the target's owning
// identifiers; handlers and services never compare roles directly.
package authz

import "github.com/staffdesk/incentive-api/internal/models"

// Decision is the result of a policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// --- Staff portal (admin / assistant / employee) ---

// CanAssignTasks reports whether a staff role may create tasks on behalf of
// other users.
func CanAssignTasks(role models.UserType) bool {
	return role == models.UserTypeAdmin || role == models.UserTypeAssistant
}

// CanAdministerTasks reports whether a staff role may act on any task: list
// all, delete, view details and analytics. Assistants manage tasks fully but
// nothing else.
func CanAdministerTasks(role models.UserType) bool {
	return role == models.UserTypeAdmin || role == models.UserTypeAssistant
}

// CanManageIncentives reports whether a staff role may create, list all, or
// delete incentives.
func CanManageIncentives(role models.UserType) bool {
	return role == models.UserTypeAdmin
}

// CanManageUsers reports whether a staff role may inspect stats for or
// delete other user accounts.
func CanManageUsers(role models.UserType) bool {
	return role == models.UserTypeAdmin
}

// CanViewUsers reports whether a staff role may read the user directory.
// Assistants need it to pick assignees.
func CanViewUsers(role models.UserType) bool {
	return role == models.UserTypeAdmin || role == models.UserTypeAssistant
}

// CanTouchTask decides whether requester may update a task's status or
// fields. The owner, the recorded assigner, and task-administering roles are
// all permitted.
func CanTouchTask(requester *models.User, task *models.Task) Decision {
	if CanAdministerTasks(requester.UserType) {
		return Allow()
	}
	if task.UserID == requester.ID {
		return Allow()
	}
	if task.AssignedBy != nil && *task.AssignedBy == requester.ID {
		return Allow()
	}
	return Deny("not the task owner or assigner")
}

// CanDeleteUser enforces the self-protection invariant on top of the role
// check: nobody deletes their own account, and the admin role is never
// deletable.
func CanDeleteUser(requester *models.User, target *models.User) Decision {
	if !CanManageUsers(requester.UserType) {
		return Deny("admin access required")
	}
	if requester.ID == target.ID {
		return Deny("cannot delete your own account")
	}
	if target.UserType == models.UserTypeAdmin {
		return Deny("cannot delete an admin account")
	}
	return Allow()
}

// --- Admin portal (main_admin / sub_admin / manager) ---

// CanActOnAdmin decides whether actor may read or modify target's account.
// Main admins act on any non-main account and on themselves. Sub-admins act
// on themselves and on siblings sharing the same parent, and never on a main
// admin regardless of the sibling rule. Managers act only on themselves.
func CanActOnAdmin(actor, target *models.Admin) Decision {
	// Explicit, independent of any other rule.
	if actor.Role != models.AdminRoleMain && target.Role == models.AdminRoleMain && actor.ID != target.ID {
		return Deny("cannot access main admin resources")
	}

	switch actor.Role {
	case models.AdminRoleMain:
		return Allow()
	case models.AdminRoleSub:
		if actor.ID == target.ID {
			return Allow()
		}
		if target.Role == models.AdminRoleSub && sameParent(actor.ParentAdminID, target.ParentAdminID) {
			return Allow()
		}
		return Deny("outside your admin scope")
	case models.AdminRoleManager:
		if actor.ID == target.ID {
			return Allow()
		}
		return Deny("managers can only access their own account")
	}
	return Deny("unknown role")
}

// CanDeleteAdmin layers the self-protection invariant over CanActOnAdmin:
// only a main admin deletes accounts, never its own and never another main
// admin's.
func CanDeleteAdmin(actor, target *models.Admin) Decision {
	if actor.Role != models.AdminRoleMain {
		return Deny("only the main admin can delete accounts")
	}
	if actor.ID == target.ID {
		return Deny("cannot delete your own account")
	}
	if target.Role == models.AdminRoleMain {
		return Deny("cannot delete a main admin")
	}
	return Allow()
}

// CanAssignManagerTasks reports whether an admin-portal role may create
// manager-to-manager task assignments.
func CanAssignManagerTasks(role models.AdminRole) bool {
	return role == models.AdminRoleManager || role == models.AdminRoleMain
}

// CanTouchAdminTask decides whether actor may update a portal task. The
// assignee, the assigner, and the main admin are permitted.
func CanTouchAdminTask(actor *models.Admin, task *models.AdminTask) Decision {
	if actor.Role == models.AdminRoleMain {
		return Allow()
	}
	if task.AssignedTo == actor.ID || task.AssignedBy == actor.ID {
		return Allow()
	}
	return Deny("can only update tasks assigned to you or by you")
}

func sameParent(a, b *uint64) bool {
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
