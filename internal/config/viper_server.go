package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadServerConfigWithViper loads server configuration using Viper,
// with file, environment and default precedence.
func LoadServerConfigWithViper(v *viper.Viper) (*Config, error) {
	setServerDefaults(v)
	setupServerEnvBinding(v)

	if err := loadConfigFile(v); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	config := &Config{}
	if err := unmarshalServerConfig(v, config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setServerDefaults sets default values for server configuration
func setServerDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "localhost")

	v.SetDefault("database.path", "./database.db")

	v.SetDefault("logging.level", "info")

	v.SetDefault("reanalysis.enabled", true)
	v.SetDefault("reanalysis.interval", "1h")
	v.SetDefault("reanalysis.batch_size", 25)
	v.SetDefault("reanalysis.disable_rate_limit", false)

	v.SetDefault("analysis.max_text_length", 100000)
}

// setupServerEnvBinding sets up environment variable binding for server configuration
func setupServerEnvBinding(v *viper.Viper) {
	v.SetEnvPrefix("INVOICE_MATCHER")
	v.AutomaticEnv()

	envBindings := map[string]string{
		"server.port":                   "SERVER_PORT",
		"server.host":                   "SERVER_HOST",
		"database.path":                 "DATABASE_PATH",
		"logging.level":                 "LOGGING_LEVEL",
		"reanalysis.enabled":            "REANALYSIS_ENABLED",
		"reanalysis.interval":           "REANALYSIS_INTERVAL",
		"reanalysis.batch_size":         "REANALYSIS_BATCH_SIZE",
		"reanalysis.disable_rate_limit": "REANALYSIS_DISABLE_RATE_LIMIT",
		"analysis.max_text_length":      "ANALYSIS_MAX_TEXT_LENGTH",
	}

	for configKey, envSuffix := range envBindings {
		v.BindEnv(configKey, "INVOICE_MATCHER_"+envSuffix)
	}

	// Bind bare environment variables for parity with config.Load
	bareEnvBindings := map[string]string{
		"server.port":                   "SERVER_PORT",
		"server.host":                   "SERVER_HOST",
		"database.path":                 "DB_PATH",
		"logging.level":                 "LOG_LEVEL",
		"reanalysis.enabled":            "REANALYSIS_ENABLED",
		"reanalysis.interval":           "REANALYSIS_INTERVAL",
		"reanalysis.batch_size":         "REANALYSIS_BATCH_SIZE",
		"reanalysis.disable_rate_limit": "DISABLE_RATE_LIMIT",
		"analysis.max_text_length":      "MAX_TEXT_LENGTH",
	}

	for configKey, envVar := range bareEnvBindings {
		v.BindEnv(configKey, envVar)
	}
}

// loadConfigFile loads configuration file if it exists
func loadConfigFile(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.invoice-matcher")
		v.SetConfigName("config")
	}

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}

// unmarshalServerConfig unmarshals Viper configuration into Config struct
func unmarshalServerConfig(v *viper.Viper, config *Config) error {
	config.ServerPort = v.GetString("server.port")
	config.ServerHost = v.GetString("server.host")
	config.DBPath = v.GetString("database.path")
	config.LogLevel = v.GetString("logging.level")

	var err error
	config.ReanalysisInterval, err = time.ParseDuration(v.GetString("reanalysis.interval"))
	if err != nil {
		return fmt.Errorf("invalid reanalysis interval: %w", err)
	}

	config.ReanalysisEnabled = v.GetBool("reanalysis.enabled")
	config.ReanalysisBatchSize = v.GetInt("reanalysis.batch_size")
	config.DisableRateLimit = v.GetBool("reanalysis.disable_rate_limit")
	config.MaxTextLength = v.GetInt("analysis.max_text_length")

	return nil
}

// LoadServerConfig loads server configuration using a default Viper instance
func LoadServerConfig() (*Config, error) {
	v := viper.New()
	return LoadServerConfigWithViper(v)
}

// LoadServerConfigWithFile loads server configuration from a specific file
func LoadServerConfigWithFile(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	return LoadServerConfigWithViper(v)
}
