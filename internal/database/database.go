package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/staffdesk/incentive-api/internal/config"
	"github.com/staffdesk/incentive-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Dialect names as resolved from the connection string.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

// ResolveDialect inspects the connection string once, at startup. Anything
// that is not a postgres or mysql URL is treated as a sqlite file path.
func ResolveDialect(url string) string {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DialectPostgres
	case strings.HasPrefix(url, "mysql://"):
		return DialectMySQL
	default:
		return DialectSQLite
	}
}

func dialector(url string) gorm.Dialector {
	switch ResolveDialect(url) {
	case DialectPostgres:
		return postgres.Open(url)
	case DialectMySQL:
		return mysql.Open(strings.TrimPrefix(url, "mysql://"))
	default:
		return sqlite.Open(url)
	}
}

// Connect opens the configured database. TranslateError is enabled so
// unique-constraint violations surface as gorm.ErrDuplicatedKey on every
// dialect; callers rely on the constraint, not a pre-check.
func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(dialector(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connection established (%s)", ResolveDialect(cfg.DatabaseURL))
	return nil
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Incentive{},
		&models.Admin{},
		&models.AdminTask{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
