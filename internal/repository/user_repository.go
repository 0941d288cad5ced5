package repository

import (
	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by lowercased email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAll lists every user, newest first
func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByType counts users grouped by role
func (r *GormUserRepository) CountByType() (map[models.UserType]int64, error) {
	type row struct {
		UserType models.UserType
		Count    int64
	}
	var rows []row
	err := r.db.Model(&models.User{}).
		Select("user_type, COUNT(*) AS count").
		Group("user_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.UserType]int64, len(rows))
	for _, rw := range rows {
		counts[rw.UserType] = rw.Count
	}
	return counts, nil
}

// Delete hard deletes a user. Owned tasks cascade at the constraint level;
// sqlite setups without foreign_keys=on get the same behavior explicitly.
func (r *GormUserRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("assigned_by = ?", id).
			Update("assigned_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Incentive{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
