package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Email    EmailConfig
	Redis    RedisConfig
	Notify   NotifyConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name  string
	Debug bool
	Port  string
	Host  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds admin authentication configuration.
// An empty SecretKey disables the admin surface instead of crashing.
type AuthConfig struct {
	SecretKey        string
	TokenExpiryHours int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig holds SMTP configuration. Enabled=false logs instead of sending.
type EmailConfig struct {
	Enabled       bool
	SMTPHost      string
	SMTPPort      int
	Username      string
	Password      string
	FromEmail     string
	FromName      string
	NotifyAddress string // Internal distribution address for operator alerts
}

// RedisConfig holds the draft-store connection settings
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DraftTTLDays int
}

// NotifyConfig holds optional operator integrations; empty URLs are skipped
type NotifyConfig struct {
	SlackWebhookURL string
	CRMWebhookURL   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:  getEnv("APP_NAME", "PeakSpace API"),
			Debug: getEnvAsBool("DEBUG", false),
			Port:  getEnv("PORT", "3000"),
			Host:  getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			SecretKey:        getEnv("JWT_SECRET", ""),
			TokenExpiryHours: getEnvAsInt("TOKEN_EXPIRY_HOURS", 168),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost:5173",
			}),
		},
		Email: EmailConfig{
			Enabled:       getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:      getEnv("SMTP_HOST", ""),
			SMTPPort:      getEnvAsInt("SMTP_PORT", 587),
			Username:      getEnv("SMTP_USERNAME", ""),
			Password:      getEnv("SMTP_PASSWORD", ""),
			FromEmail:     getEnv("EMAIL_FROM", "noreply@peakspace.com"),
			FromName:      getEnv("EMAIL_FROM_NAME", "PeakSpace"),
			NotifyAddress: getEnv("EMAIL_NOTIFY_ADDRESS", ""),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			DraftTTLDays: getEnvAsInt("DRAFT_TTL_DAYS", 14),
		},
		Notify: NotifyConfig{
			SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
			CRMWebhookURL:   getEnv("CRM_WEBHOOK_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.Email.Enabled && cfg.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	return nil
}

// AdminEnabled reports whether the admin surface can be mounted
func (c *Config) AdminEnabled() bool {
	return c.Auth.SecretKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
