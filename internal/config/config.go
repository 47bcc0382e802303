package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	MongoDB   MongoDBConfig
	Reporting ReportingConfig
	Sheets    SheetsConfig
	Webhook   WebhookConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// SessionConfig identifies the user whose collections the sync session binds
// to at startup.
type SessionConfig struct {
	UserID string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// ReportingConfig holds the digest schedule and staleness threshold.
type ReportingConfig struct {
	CronSchedule   string
	StaleAfterDays int
}

// SheetsConfig contains configuration required to export digests to Google
// Sheets. Optional; export is disabled when the credentials path is empty.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// WebhookConfig holds the notification endpoint. Optional; notifications are
// disabled when the URL is empty.
type WebhookConfig struct {
	URL string
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
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	staleAfter, err := strconv.Atoi(getenvWithDefault("DIGEST_STALE_AFTER_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("DIGEST_STALE_AFTER_DAYS must be an integer: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Session: SessionConfig{
			UserID: os.Getenv("MEADERY_USER_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "meadery"),
		},
		Reporting: ReportingConfig{
			CronSchedule:   getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 9 * * *"),
			StaleAfterDays: staleAfter,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_EXPORT_ID"),
		},
		Webhook: WebhookConfig{
			URL: os.Getenv("DIGEST_WEBHOOK_URL"),
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

	if c.Session.UserID == "" {
		return errors.New("MEADERY_USER_ID must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}

	if c.Reporting.StaleAfterDays <= 0 {
		return errors.New("DIGEST_STALE_AFTER_DAYS must be positive")
	}

	// Sheets export is optional, but a credentials path without a sheet id
	// (or the reverse) is a misconfiguration.
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
