package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBPath string

	// Logging
	LogLevel string

	// Background reanalysis configuration
	ReanalysisEnabled   bool
	ReanalysisInterval  time.Duration
	ReanalysisBatchSize int
	DisableRateLimit    bool

	// Analysis limits
	MaxTextLength int
}

// Load loads configuration from environment variables with defaults.
// If a .env file exists, it will be loaded first.
func Load() (*Config, error) {
	loadEnvFile(".env")
	config := &Config{
		// Server defaults
		ServerPort: getEnvOrDefault("SERVER_PORT", "8080"),
		ServerHost: getEnvOrDefault("SERVER_HOST", "localhost"),

		// Database defaults
		DBPath: getEnvOrDefault("DB_PATH", "./database.db"),

		// Logging
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),

		// Reanalysis defaults
		ReanalysisEnabled:   getEnvBoolOrDefault("REANALYSIS_ENABLED", true),
		ReanalysisInterval:  getEnvDurationOrDefault("REANALYSIS_INTERVAL", "1h"),
		ReanalysisBatchSize: getEnvIntOrDefault("REANALYSIS_BATCH_SIZE", 25),
		DisableRateLimit:    getEnvBoolOrDefault("DISABLE_RATE_LIMIT", false),

		// Analysis limits
		MaxTextLength: getEnvIntOrDefault("MAX_TEXT_LENGTH", 100000),
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validate checks if the configuration is valid
func (c *Config) validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	// Check if port is a valid number
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid server port: %s", c.ServerPort)
	}

	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	isValidLogLevel := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			isValidLogLevel = true
			break
		}
	}
	if !isValidLogLevel {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	// Validate reanalysis configuration
	if c.ReanalysisInterval <= 0 {
		return fmt.Errorf("reanalysis interval must be positive")
	}
	if c.ReanalysisBatchSize < 1 || c.ReanalysisBatchSize > 100 {
		return fmt.Errorf("reanalysis batch size must be between 1 and 100")
	}

	if c.MaxTextLength < 1 {
		return fmt.Errorf("max text length must be positive")
	}

	return nil
}

// Address returns the full server address
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// GetDisableRateLimit returns whether the reanalysis cooldown is disabled
func (c *Config) GetDisableRateLimit() bool {
	return c.DisableRateLimit
}
