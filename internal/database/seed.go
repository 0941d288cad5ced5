package database

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/staffdesk/incentive-api/internal/config"
	"github.com/staffdesk/incentive-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedMainAdmin creates the admin portal's main admin from the bootstrap
// config when it does not exist yet. Idempotent: an existing row is left
// untouched, including its password.
func SeedMainAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.SeedAdminEmail == "" {
		return nil
	}
	email := strings.ToLower(cfg.SeedAdminEmail)

	var existing models.Admin
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for main admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	admin := &models.Admin{
		Name:         cfg.SeedAdminName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.AdminRoleMain,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create main admin: %w", err)
	}

	log.Printf("Seeded main admin %s", email)
	return nil
}
