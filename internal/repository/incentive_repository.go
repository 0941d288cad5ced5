package repository

import (
	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/gorm"
)

// GormIncentiveRepository is a GORM implementation of IncentiveRepository
type GormIncentiveRepository struct {
	db *gorm.DB
}

// NewIncentiveRepository creates a new IncentiveRepository
func NewIncentiveRepository(db *gorm.DB) IncentiveRepository {
	return &GormIncentiveRepository{db: db}
}

// Create appends a ledger entry
func (r *GormIncentiveRepository) Create(incentive *models.Incentive) error {
	return r.db.Create(incentive).Error
}

// FindByID finds an entry by ID
func (r *GormIncentiveRepository) FindByID(id uint64) (*models.Incentive, error) {
	var incentive models.Incentive
	if err := r.db.First(&incentive, id).Error; err != nil {
		return nil, err
	}
	return &incentive, nil
}

// ListForUser lists a user's entries newest first, with target and creator
// preloaded
func (r *GormIncentiveRepository) ListForUser(userID uint64) ([]models.Incentive, error) {
	var incentives []models.Incentive
	err := r.db.Preload("User").Preload("Creator").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&incentives).Error
	if err != nil {
		return nil, err
	}
	return incentives, nil
}

// ListAll lists every entry newest first, with target and creator preloaded
func (r *GormIncentiveRepository) ListAll() ([]models.Incentive, error) {
	var incentives []models.Incentive
	err := r.db.Preload("User").Preload("Creator").
		Order("created_at DESC, id DESC").
		Find(&incentives).Error
	if err != nil {
		return nil, err
	}
	return incentives, nil
}

// Delete removes an entry
func (r *GormIncentiveRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Incentive{}, id).Error
}

// SumByKind aggregates count and amount per kind
func (r *GormIncentiveRepository) SumByKind() ([]IncentiveKindStats, error) {
	var stats []IncentiveKindStats
	err := r.db.Model(&models.Incentive{}).
		Select("type AS kind, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Group("type").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
