package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"restaurant_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	defaultSessionSecret = "change-me-restaurant-session-secret"
)

// Config holds all configuration for the application.
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DatabaseURL string

	SessionSecret string
	SessionTTL    time.Duration

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	EmailFrom     string
	EmailFromName string
	AdminEmail    string

	UploadDir      string
	MaxUploadBytes int64

	SiteURL            string
	CORSAllowedOrigins []string

	RedisURL        string
	LoginRateLimit  int
	LoginRateWindow time.Duration
	S3BucketName    string
	AWSRegion       string
}

// Load reads configuration from the environment, after an optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Env:      utils.Getenv("APP_ENV", EnvDevelopment),
		Port:     utils.Getenv("PORT", "3000"),
		LogLevel: utils.Getenv("LOG_LEVEL", "info"),

		DatabaseURL: databaseURL(),

		SessionSecret: utils.Getenv("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:    time.Duration(utils.GetenvInt("SESSION_TTL_HOURS", 24)) * time.Hour,

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      utils.Getenv("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		EmailFrom:     utils.Getenv("EMAIL_FROM", "no-reply@localhost"),
		EmailFromName: utils.Getenv("EMAIL_FROM_NAME", "Restaurant"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),

		UploadDir:      utils.Getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(utils.GetenvInt("MAX_UPLOAD_MB", 5)) << 20,

		SiteURL:            utils.Getenv("SITE_URL", "http://localhost:3000"),
		CORSAllowedOrigins: utils.GetenvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		RedisURL:        os.Getenv("REDIS_URL"),
		LoginRateLimit:  utils.GetenvInt("LOGIN_RATE_LIMIT", 10),
		LoginRateWindow: time.Duration(utils.GetenvInt("LOGIN_RATE_WINDOW_MINUTES", 15)) * time.Minute,
		S3BucketName:    os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:       utils.Getenv("AWS_REGION", "us-east-1"),
	}

	if cfg.AdminEmail == "" {
		cfg.AdminEmail = cfg.EmailFrom
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the discrete DB_* variables.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		utils.Getenv("DB_PORT", "5432"),
		utils.Getenv("DB_USER", "restaurant"),
		utils.Getenv("DB_PASSWORD", ""),
		utils.Getenv("DB_NAME", "restaurant"),
		utils.Getenv("DB_SSLMODE", "disable"),
	)
}

// Validate checks settings that would make the server unsafe or unusable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be set in production")
	}
	if len(c.SessionSecret) < 16 {
		return errors.New("SESSION_SECRET must be at least 16 characters")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_HOURS must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.RedisURL != "" {
		if c.LoginRateLimit <= 0 {
			return errors.New("LOGIN_RATE_LIMIT must be positive when REDIS_URL is set")
		}
		if c.LoginRateWindow <= 0 {
			return errors.New("LOGIN_RATE_WINDOW_MINUTES must be positive when REDIS_URL is set")
		}
	}
	return nil
}

// IsProduction controls cookie security and log format.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
