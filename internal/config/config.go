package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"notecal/internal/extract"
)

// Config holds all configuration for the application.
type Config struct {
	VaultPath         string
	DBPath            string
	APIPort           string
	LogLevel          string
	LogFormat         string
	StartDateFields   []string
	EndDateFields     []string
	SourcePriority    []extract.Source
	WeekStart         int
	AnniversaryFields []string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load a .env file (ignore error if it doesn't exist).
	// The walk starts in the current directory and climbs toward the
	// project root.
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		VaultPath:         getEnv("VAULT_PATH", ""),
		DBPath:            getEnv("DB_PATH", "./data/notecal.db"),
		APIPort:           getEnv("API_PORT", "9000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		StartDateFields:   splitList(getEnv("START_DATE_FIELDS", "date,startDate,start")),
		EndDateFields:     splitList(getEnv("END_DATE_FIELDS", "endDate,end,due")),
		AnniversaryFields: splitList(getEnv("ANNIVERSARY_FIELDS", "")),
	}

	for _, name := range splitList(getEnv("DATE_SOURCE_PRIORITY", "properties,filename")) {
		switch name {
		case string(extract.SourceProperties):
			cfg.SourcePriority = append(cfg.SourcePriority, extract.SourceProperties)
		case string(extract.SourceFilename):
			cfg.SourcePriority = append(cfg.SourcePriority, extract.SourceFilename)
		default:
			return nil, fmt.Errorf("DATE_SOURCE_PRIORITY contains unknown source %q", name)
		}
	}

	weekStartStr := getEnv("WEEK_START", "0")
	weekStart, err := strconv.Atoi(weekStartStr)
	if err != nil {
		return nil, fmt.Errorf("WEEK_START must be a valid integer: %w", err)
	}
	if weekStart < 0 || weekStart > 6 {
		return nil, fmt.Errorf("WEEK_START must be between 0 (Sunday) and 6 (Saturday)")
	}
	cfg.WeekStart = weekStart

	// Validate required fields
	if cfg.VaultPath == "" {
		return nil, fmt.Errorf("VAULT_PATH is required")
	}
	if info, err := os.Stat(cfg.VaultPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("VAULT_PATH %q is not a directory", cfg.VaultPath)
	}

	if err := cfg.ExtractConfig().Validate(); err != nil {
		return nil, fmt.Errorf("invalid date extraction settings: %w", err)
	}

	// Create the data directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// ExtractConfig builds the date extraction settings from the loaded fields.
func (c *Config) ExtractConfig() extract.Config {
	return extract.Config{
		StartFields: c.StartDateFields,
		EndFields:   c.EndDateFields,
		Priority:    c.SourcePriority,
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated env value into trimmed non-empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
