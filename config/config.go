package config

import (
	"fmt"
	"os"
)

// Config holds all application configuration, loaded once at boot.
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string

	// SendGrid
	SendGridAPIKey string
	FromEmail      string

	// Public base URL used in confirmation links.
	SiteURL string
}

// Load reads configuration from environment variables.
// DATABASE_URL and JWT_SECRET are required; everything else has a default
// or degrades to a disabled integration (email is best-effort anyway).
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           getEnv("PORT", "8080"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		FromEmail:      getEnv("SENDGRID_FROM_EMAIL", "noreply@howisyourday.com"),
		SiteURL:        getEnv("SITE_URL", "http://localhost:8080"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
