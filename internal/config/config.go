package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds server settings read from the environment
type Config struct {
	Port                string
	GinMode             string
	CORSAllowedOrigin   string
	LogLevel            string
	PresetRetentionDays int
	PresetCacheTTL      time.Duration
	PresetPurgeSchedule string
}

// Load reads the server configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "9091"),
		GinMode:             getEnvOrDefault("GIN_MODE", "release"),
		CORSAllowedOrigin:   getEnvOrDefault("CORS_ALLOWED_ORIGIN", "*"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		PresetPurgeSchedule: getEnvOrDefault("PRESET_PURGE_SCHEDULE", "0 3 * * *"),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE value %q", cfg.GinMode)
	}

	days, err := strconv.Atoi(getEnvOrDefault("PRESET_RETENTION_DAYS", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRESET_RETENTION_DAYS value: %w", err)
	}
	if days <= 0 {
		return nil, fmt.Errorf("PRESET_RETENTION_DAYS must be positive, got %d", days)
	}
	cfg.PresetRetentionDays = days

	ttl, err := time.ParseDuration(getEnvOrDefault("PRESET_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRESET_CACHE_TTL value: %w", err)
	}
	cfg.PresetCacheTTL = ttl

	if _, err := cron.ParseStandard(cfg.PresetPurgeSchedule); err != nil {
		return nil, fmt.Errorf("invalid PRESET_PURGE_SCHEDULE value: %w", err)
	}

	return cfg, nil
}

// PresetRetention returns how long an unused preset is kept
func (c *Config) PresetRetention() time.Duration {
	return time.Duration(c.PresetRetentionDays) * 24 * time.Hour
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
