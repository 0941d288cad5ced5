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
	ErrAdminNotFound  = errors.New("admin not found")
	ErrAdminFieldsReq = errors.New("name, email, and password required")
)

// AdminService handles the admin portal's principal directory: login,
// profiles, and sub-admin management with parent scoping.
type AdminService struct {
	adminRepo repository.AdminRepository
	secret    string
	tokenTTL  time.Duration
}

// NewAdminService creates a new AdminService.
func NewAdminService(adminRepo repository.AdminRepository, secret string, ttl time.Duration) *AdminService {
	if ttl == 0 {
		ttl = token.DefaultTTL
	}
	return &AdminService{
		adminRepo: adminRepo,
		secret:    secret,
		tokenTTL:  ttl,
	}
}

// Login verifies portal credentials and returns the admin with a token bound
// to the admin audience.
func (s *AdminService) Login(email, password string) (*models.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrEmailRequired
	}

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := token.Sign(admin.ID, token.AudienceAdmin, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return admin, signed, nil
}

// GetProfile returns an admin with its parent reference resolved.
func (s *AdminService) GetProfile(id uint64) (*models.Admin, error) {
	admin, err := s.adminRepo.FindByID(id, "ParentAdmin")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}
	return admin, nil
}

// ListSubAdmins returns the sub-admins visible to the actor: every sub-admin
// for a main admin, same-parent siblings for a sub-admin.
func (s *AdminService) ListSubAdmins(actor *models.Admin) ([]models.Admin, error) {
	switch actor.Role {
	case models.AdminRoleMain:
		admins, err := s.adminRepo.ListSubAdmins(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list sub-admins: %w", err)
		}
		return admins, nil
	case models.AdminRoleSub:
		// No recorded parent means no sibling scope; a nil parent must not
		// widen into the main admin's unscoped listing.
		if actor.ParentAdminID == nil {
			return []models.Admin{*actor}, nil
		}
		admins, err := s.adminRepo.ListSubAdmins(actor.ParentAdminID)
		if err != nil {
			return nil, fmt.Errorf("failed to list sub-admins: %w", err)
		}
		return admins, nil
	default:
		return nil, forbidden("admin access required")
	}
}

// CreateSubAdminInput represents input for creating a sub-admin.
type CreateSubAdminInput struct {
	Name     string
	Email    string
	Password string
}

// CreateSubAdmin creates a sub-admin under the acting main admin.
func (s *AdminService) CreateSubAdmin(actor *models.Admin, input CreateSubAdminInput) (*models.Admin, error) {
	if actor.Role != models.AdminRoleMain {
		return nil, forbidden("only the main admin can create sub-admins")
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrAdminFieldsReq
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	parentID := actor.ID
	admin := &models.Admin{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          models.AdminRoleSub,
		ParentAdminID: &parentID,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create sub-admin: %w", err)
	}
	return admin, nil
}

// UpdateAdminInput is a partial patch of an admin account. Role and parent
// are never patchable through this path.
type UpdateAdminInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UpdateAdmin patches an account within the actor's scope: sub-admins update
// only themselves, main admins update any non-main account.
func (s *AdminService) UpdateAdmin(actor *models.Admin, targetID uint64, input UpdateAdminInput) (*models.Admin, error) {
	target, err := s.adminRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to find admin: %w", err)
	}

	if d := authz.CanActOnAdmin(actor, target); !d.Allowed {
		return nil, forbidden(d.Reason)
	}
	if actor.Role == models.AdminRoleMain && target.Role == models.AdminRoleMain && actor.ID != targetID {
		return nil, forbidden("cannot update another main admin")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		target.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		target.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = string(hash)
	}

	if err := s.adminRepo.Update(target); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}
	return target, nil
}

// DeleteAdmin removes an account. Self-deletion and main-admin targets are
// rejected before any storage mutation.
func (s *AdminService) DeleteAdmin(actor *models.Admin, targetID uint64) error {
	target, err := s.adminRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("failed to find admin: %w", err)
	}

	if d := authz.CanDeleteAdmin(actor, target); !d.Allowed {
		return forbidden(d.Reason)
	}

	if err := s.adminRepo.Delete(targetID); err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return nil
}
