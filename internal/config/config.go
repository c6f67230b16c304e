package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMongoDB = "mongodb"
	StoreMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Store   StoreConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	Digest  DigestConfig
	Sheets  SheetsConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds bearer credential settings.
type AuthConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

// DigestConfig holds the KPI digest scheduler settings. An empty CronSchedule disables it.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
	WebhookURL   string
}

// Enabled reports whether the digest job should be scheduled.
func (d DigestConfig) Enabled() bool {
	return d.CronSchedule != ""
}

// SheetsConfig contains configuration required to export to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the export target is configured.
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsPath != "" && s.SpreadsheetID != ""
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are fine when configuration comes from the environment.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("JWT_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_TTL: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getenvWithDefault("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("METRICS_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getenvWithDefault("APP_PORT", "8080"),
			CORSOrigins: splitList(getenvWithDefault("CORS_ORIGINS", "*")),
		},
		Log: LogConfig{
			Level: strings.ToLower(getenvWithDefault("LOG_LEVEL", "info")),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getenvWithDefault("STORE_DRIVER", StoreMongoDB)),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "coopledger"),
		},
		Auth: AuthConfig{
			SecretKey: os.Getenv("JWT_SECRET_KEY"),
			TokenTTL:  ttl,
		},
		Digest: DigestConfig{
			CronSchedule: strings.TrimSpace(os.Getenv("DIGEST_CRON")),
			Timezone:     getenvWithDefault("TIMEZONE", "UTC"),
			WebhookURL:   os.Getenv("DIGEST_WEBHOOK_URL"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Metrics: MetricsConfig{
			Enabled: metricsEnabled,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if len(c.Server.CORSOrigins) == 0 {
		return errors.New("CORS_ORIGINS must list at least one origin")
	}

	switch c.Store.Driver {
	case StoreMongoDB:
		if c.MongoDB.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.MongoDB.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMongoDB, StoreMemory, c.Store.Driver)
	}

	if c.Auth.SecretKey == "" {
		return errors.New("JWT_SECRET_KEY must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}

	if c.Digest.Enabled() {
		if _, err := cron.ParseStandard(c.Digest.CronSchedule); err != nil {
			return fmt.Errorf("DIGEST_CRON is invalid: %w", err)
		}
		if _, err := time.LoadLocation(c.Digest.Timezone); err != nil {
			return fmt.Errorf("TIMEZONE is invalid: %w", err)
		}
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_EXPORT_ID must be provided together")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
