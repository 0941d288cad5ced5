package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/staffdesk/incentive-api/internal/authz"
	"github.com/staffdesk/incentive-api/internal/models"
	"github.com/staffdesk/incentive-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidKind       = errors.New("type must be bonus or deduction")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrReasonRequired    = errors.New("reason required")
	ErrIncentiveNotFound = errors.New("incentive not found")
)

// IncentiveService handles the append-only bonus/deduction ledger.
type IncentiveService struct {
	incentiveRepo repository.IncentiveRepository
	userRepo      repository.UserRepository
}

// NewIncentiveService creates a new IncentiveService.
func NewIncentiveService(incentiveRepo repository.IncentiveRepository, userRepo repository.UserRepository) *IncentiveService {
	return &IncentiveService{
		incentiveRepo: incentiveRepo,
		userRepo:      userRepo,
	}
}

// CreateIncentiveInput represents input for one ledger entry.
type CreateIncentiveInput struct {
	UserID uint64
	Kind   models.IncentiveKind
	Amount decimal.Decimal
	Reason string
}

// Create appends a ledger entry; admin only. Entries are immutable once
// written.
func (s *IncentiveService) Create(creator *models.User, input CreateIncentiveInput) (*models.Incentive, error) {
	if !authz.CanManageIncentives(creator.UserType) {
		return nil, forbidden("admin access required")
	}
	if !input.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !input.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, ErrReasonRequired
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	incentive := &models.Incentive{
		UserID:    input.UserID,
		Kind:      input.Kind,
		Amount:    input.Amount,
		Reason:    strings.TrimSpace(input.Reason),
		CreatedBy: creator.ID,
	}

	if err := s.incentiveRepo.Create(incentive); err != nil {
		return nil, fmt.Errorf("failed to create incentive: %w", err)
	}
	return incentive, nil
}

// ListForUser returns a user's entries, newest first, annotated with target
// and creator.
func (s *IncentiveService) ListForUser(userID uint64) ([]models.Incentive, error) {
	incentives, err := s.incentiveRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incentives: %w", err)
	}
	return incentives, nil
}

// ListAll returns every entry, admin only.
func (s *IncentiveService) ListAll(requester *models.User) ([]models.Incentive, error) {
	if !authz.CanManageIncentives(requester.UserType) {
		return nil, forbidden("admin access required")
	}
	incentives, err := s.incentiveRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list incentives: %w", err)
	}
	return incentives, nil
}

// Delete removes an entry, admin only.
func (s *IncentiveService) Delete(requester *models.User, id uint64) error {
	if !authz.CanManageIncentives(requester.UserType) {
		return forbidden("admin access required")
	}
	if _, err := s.incentiveRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncentiveNotFound
		}
		return fmt.Errorf("failed to find incentive: %w", err)
	}
	if err := s.incentiveRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete incentive: %w", err)
	}
	return nil
}
