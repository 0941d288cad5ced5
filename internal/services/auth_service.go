package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/constants"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"github.com/staffdesk/incentive-api/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired      = errors.New("email and password required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService handles staff registration, login, and the user directory.
type AuthService struct {
	userRepo repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

// NewAuthService creates a new AuthService. A zero ttl falls back to the
// 7-day default.
func NewAuthService(userRepo repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	if ttl == 0 {
		ttl = token.DefaultTTL
	}
	return &AuthService{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: ttl,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	UserType   models.UserType
	Department *string
}

// Register creates a new user and returns it with a signed token. Duplicate
// emails surface from the unique constraint, never from a pre-check.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, "", ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	userType := input.UserType
	if !userType.Valid() {
		userType = models.UserTypeEmployee
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		UserType:     userType,
		Department:   input.Department,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := token.Sign(user.ID, token.AudienceStaff, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, signed, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := token.Sign(user.ID, token.AudienceStaff, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, signed, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers returns the user directory for assignment-capable roles.
func (s *AuthService) ListUsers(requester *models.User) ([]models.User, error) {
	if !authz.CanViewUsers(requester.UserType) {
		return nil, forbidden("admin or assistant access required")
	}
	users, err := s.userRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UserStats holds the per-role headcount.
type UserStats struct {
	Employees  int64 `json:"employees"`
	Assistants int64 `json:"assistants"`
	Admins     int64 `json:"admins"`
	Total      int64 `json:"total"`
}

// GetUserStats returns per-role headcounts, admin only.
func (s *AuthService) GetUserStats(requester *models.User) (*UserStats, error) {
	if !authz.CanManageUsers(requester.UserType) {
		return nil, forbidden("admin access required")
	}

	counts, err := s.userRepo.CountByType()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	stats := &UserStats{
		Employees:  counts[models.UserTypeEmployee],
		Assistants: counts[models.UserTypeAssistant],
		Admins:     counts[models.UserTypeAdmin],
	}
	stats.Total = stats.Employees + stats.Assistants + stats.Admins
	return stats, nil
}

// DeleteUser removes a user account. Self-deletion and admin accounts are
// rejected before any storage mutation.
func (s *AuthService) DeleteUser(requester *models.User, targetID uint64) error {
	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if d := authz.CanDeleteUser(requester, target); !d.Allowed {
		return forbidden(d.Reason)
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
