package repository

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/gorm"
)

// GormAdminTaskRepository is a GORM implementation of AdminTaskRepository
type GormAdminTaskRepository struct {
	db *gorm.DB
}

// NewAdminTaskRepository creates a new AdminTaskRepository
func NewAdminTaskRepository(db *gorm.DB) AdminTaskRepository {
	return &GormAdminTaskRepository{db: db}
}

// Create creates a new portal task
func (r *GormAdminTaskRepository) Create(task *models.AdminTask) error {
	return r.db.Create(task).Error
}

// FindByID finds a portal task by ID with optional preloading
func (r *GormAdminTaskRepository) FindByID(id uint64, preload ...string) (*models.AdminTask, error) {
	var task models.AdminTask
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForAdmin lists tasks where the admin is assignee or assigner, newest
// first
func (r *GormAdminTaskRepository) ListForAdmin(adminID uint64, week *time.Time) ([]models.AdminTask, error) {
	query := r.db.Preload("Assignee").Preload("Assigner").
		Where("assigned_to = ? OR assigned_by = ?", adminID, adminID)
	if week != nil {
		query = query.Where("week_start = ?", *week)
	}

	var tasks []models.AdminTask
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists a modified portal task
func (r *GormAdminTaskRepository) Update(task *models.AdminTask) error {
	return r.db.Save(task).Error
}
