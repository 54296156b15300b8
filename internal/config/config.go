package config

import (
	"os"
	"strconv"

	"github.com/jonlighthall/tldiff/internal/errors"
)

// Config represents the complete application configuration for a
// comparison run: the user-tunable thresholds plus the driver's
// operational limits.
type Config struct {
	Thresholds ThresholdConfig
	Driver     DriverConfig
}

// ThresholdConfig mirrors spec.md §3's Thresholds record.
type ThresholdConfig struct {
	Significant        float64
	Critical           float64
	Print              float64
	SignificantIsPct   bool
	SignificantPercent float64
}

// DriverConfig holds operational limits for the comparison driver.
type DriverConfig struct {
	RowCap    int
	Verbosity int
	LogLevel  string
}

// Load reads configuration from environment variables and validates it.
// CLI flags (see cmd/tldiff) take precedence over these defaults when set.
func Load() (*Config, error) {
	cfg := &Config{
		Thresholds: loadThresholdConfig(),
		Driver:     loadDriverConfig(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func loadThresholdConfig() ThresholdConfig {
	return ThresholdConfig{
		Significant:        getEnvFloatOrDefault("TLDIFF_SIGNIFICANT", 0.05),
		Critical:           getEnvFloatOrDefault("TLDIFF_CRITICAL", 10.0),
		Print:              getEnvFloatOrDefault("TLDIFF_PRINT", 1.0),
		SignificantIsPct:   getEnvBoolOrDefault("TLDIFF_SIGNIFICANT_IS_PERCENT", false),
		SignificantPercent: getEnvFloatOrDefault("TLDIFF_SIGNIFICANT_PERCENT", 0.01),
	}
}

func loadDriverConfig() DriverConfig {
	return DriverConfig{
		RowCap:    getEnvIntOrDefault("TLDIFF_ROW_CAP", 50),
		Verbosity: getEnvIntOrDefault("TLDIFF_VERBOSITY", 0),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Thresholds.Significant < 0 {
		return errors.ValidationError("significant threshold must be >= 0")
	}
	if cfg.Thresholds.Critical <= 0 {
		return errors.ValidationError("critical threshold must be > 0")
	}
	if cfg.Thresholds.Print < 0 {
		return errors.ValidationError("print threshold must be >= 0")
	}
	if cfg.Driver.RowCap <= 0 {
		return errors.ValidationError("row cap must be > 0")
	}
	return nil
}

// Helper functions for environment variable parsing, unchanged in shape
// from the ambient config pattern this project follows.

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
