package dto

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
)

// UserDTO represents a user in API responses. The credential hash is never
// part of any response shape.
type UserDTO struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	UserType   models.UserType `json:"user_type"`
	Department *string         `json:"department"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		UserType:   user.UserType,
		Department: user.Department,
		CreatedAt:  user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
