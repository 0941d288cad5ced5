package repository

import (
	"time"

	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListForPrincipal lists tasks owned by userID, plus tasks assigned by userID
// when includeAssigned is set
func (r *GormTaskRepository) ListForPrincipal(userID uint64, includeAssigned bool, week *time.Time) ([]models.Task, error) {
	query := r.db.Model(&models.Task{})
	if includeAssigned {
		query = query.Where("user_id = ? OR assigned_by = ?", userID, userID)
	} else {
		query = query.Where("user_id = ?", userID)
	}
	if week != nil {
		query = query.Where("week_start = ?", *week)
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAll lists every task with its owner, newest first
func (r *GormTaskRepository) ListAll() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Preload("Owner").Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists a modified task. Save writes all columns so clearing
// completed_at back to NULL round-trips.
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete hard deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// CountTotals returns assigned and completed counts, optionally scoped to one
// week bucket
func (r *GormTaskRepository) CountTotals(week *time.Time) (int64, int64, error) {
	base := r.db.Model(&models.Task{})
	if week != nil {
		base = base.Where("week_start = ?", *week)
	}

	var assigned int64
	if err := base.Session(&gorm.Session{}).Count(&assigned).Error; err != nil {
		return 0, 0, err
	}

	var completed int64
	if err := base.Session(&gorm.Session{}).
		Where("status = ?", models.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}

	return assigned, completed, nil
}

// StatsPerUser returns the per-user breakdown ordered by name ascending
func (r *GormTaskRepository) StatsPerUser(week *time.Time) ([]UserTaskStats, error) {
	query := r.db.Model(&models.User{}).
		Select("users.id AS user_id, users.name AS name, COUNT(tasks.id) AS assigned, COALESCE(SUM(CASE WHEN tasks.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed")

	if week != nil {
		query = query.Joins("LEFT JOIN tasks ON tasks.user_id = users.id AND tasks.week_start = ?", *week)
	} else {
		query = query.Joins("LEFT JOIN tasks ON tasks.user_id = users.id")
	}

	var stats []UserTaskStats
	err := query.Group("users.id, users.name").
		Order("users.name ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountByStatus counts tasks grouped by status
func (r *GormTaskRepository) CountByStatus() (map[models.TaskStatus]int64, error) {
	type row struct {
		Status models.TaskStatus
		Count  int64
	}
	var rows []row
	err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
