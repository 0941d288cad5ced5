package repository

import (
	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/gorm"
)

// GormAdminRepository is a GORM implementation of AdminRepository
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &GormAdminRepository{db: db}
}

// Create creates a new admin
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// FindByID finds an admin by ID with optional preloading
func (r *GormAdminRepository) FindByID(id uint64, preload ...string) (*models.Admin, error) {
	var admin models.Admin
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail finds an admin by lowercased email
func (r *GormAdminRepository) FindByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// ListSubAdmins lists sub-admins, scoped to one parent when parentID is
// non-nil, newest first
func (r *GormAdminRepository) ListSubAdmins(parentID *uint64) ([]models.Admin, error) {
	query := r.db.Preload("ParentAdmin").Where("role = ?", models.AdminRoleSub)
	if parentID != nil {
		query = query.Where("parent_admin_id = ?", *parentID)
	}

	var admins []models.Admin
	if err := query.Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// Update persists a modified admin
func (r *GormAdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// Delete removes an admin
func (r *GormAdminRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Admin{}, id).Error
}
