package models

import "time"

type UserType string

const (
	UserTypeAdmin     UserType = "admin"
	UserTypeAssistant UserType = "assistant"
	UserTypeEmployee  UserType = "employee"
)

// Valid reports whether t is one of the known staff roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdmin, UserTypeAssistant, UserTypeEmployee:
		return true
	}
	return false
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255)" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType  `gorm:"type:varchar(20);not null;default:'employee'" json:"user_type"`
	Department   *string   `gorm:"type:varchar(100)" json:"department"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Tasks      []Task      `gorm:"foreignKey:UserID" json:"-"`
	Incentives []Incentive `gorm:"foreignKey:UserID" json:"-"`
}
