package config

import (
	"os"
	"strings"
	"time"

	"salesboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig
	Data        DataConfig
	Sheets      SheetsConfig
	Credentials CredentialConfig
	Database    DatabaseConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	APIPort string
	GinMode string
}

// DataConfig holds the local file data source settings
type DataConfig struct {
	File     string
	CacheTTL time.Duration
}

// SheetsConfig holds the Google Sheets data source settings
type SheetsConfig struct {
	SpreadsheetID string
	Worksheets    []string
	CacheTTL      time.Duration
}

// CredentialConfig holds the service-account credential locations
type CredentialConfig struct {
	SecretsFile     string
	CredentialsFile string
}

// DatabaseConfig holds the optional snapshot-audit database settings
type DatabaseConfig struct {
	URL string
}

// DefaultWorksheets is the worksheet set read when SHEETS_WORKSHEETS is unset.
var DefaultWorksheets = []string{"PAC", "MLG", "ELP", "Cordoba", "Comission"}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			File:     getEnvOrDefault("DATA_FILE", "processed_combined_data.csv"),
			CacheTTL: getEnvDurationOrDefault("DATA_CACHE_TTL", 30*time.Minute),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: getEnvOrDefault("SPREADSHEET_ID", ""),
			Worksheets:    getEnvListOrDefault("SHEETS_WORKSHEETS", DefaultWorksheets),
			CacheTTL:      getEnvDurationOrDefault("SHEETS_CACHE_TTL", 5*time.Minute),
		},
		Credentials: CredentialConfig{
			SecretsFile:     getEnvOrDefault("SECRETS_FILE", "secrets.toml"),
			CredentialsFile: getEnvOrDefault("CREDENTIALS_FILE", "credentials.json"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// UseSheets reports whether the Google Sheets source is configured.
func (c *Config) UseSheets() bool {
	return c.Sheets.SpreadsheetID != ""
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.UseSheets() && len(config.Sheets.Worksheets) == 0 {
		return errors.ConfigInvalid("at least one worksheet is required for the sheets source")
	}
	if !config.UseSheets() && config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required when SPREADSHEET_ID is unset")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
