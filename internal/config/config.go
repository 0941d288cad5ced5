package config

import (
	"os"
	"time"

	"github.com/staffdesk/incentive-api/internal/token"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	GinMode     string

	// Bootstrap credentials for the admin portal's main admin. Seeding is
	// skipped when the email is empty.
	SeedAdminName     string
	SeedAdminEmail    string
	SeedAdminPassword string
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "incentive.db"),
		JWTSecret:         getEnv("JWT_SECRET", "default-secret-key-change-me"),
		TokenTTL:          getDuration("TOKEN_TTL", token.DefaultTTL),
		GinMode:           getEnv("GIN_MODE", "debug"),
		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Main Admin"),
		SeedAdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
