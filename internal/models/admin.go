package models

import "time"

// AdminRole is the admin-portal role taxonomy. It is deliberately separate
// from UserType: the portals have unrelated scoping rules.
type AdminRole string

const (
	AdminRoleMain    AdminRole = "main_admin"
	AdminRoleSub     AdminRole = "sub_admin"
	AdminRoleManager AdminRole = "manager"
)

func (r AdminRole) Valid() bool {
	switch r {
	case AdminRoleMain, AdminRoleSub, AdminRoleManager:
		return true
	}
	return false
}

// Admin is a principal of the admin portal. Sub-admins carry a parent
// reference to the main admin that created them; managers have no parent.
type Admin struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role          AdminRole `gorm:"type:varchar(20);not null;default:'sub_admin';index" json:"role"`
	ParentAdminID *uint64   `gorm:"index" json:"parent_admin_id"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	ParentAdmin *Admin `gorm:"foreignKey:ParentAdminID" json:"parent_admin,omitempty"`
}
