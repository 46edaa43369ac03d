package config

import (
	"os"
	"strconv"

	"courtlens/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Paths    PathConfig
	Engine   EngineConfig
}

// DatabaseConfig holds database connection settings. Persistence is
// optional: an empty URL runs the engine without a results store.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PathConfig holds file system paths for the data inputs
type PathConfig struct {
	DatasetFile    string `validate:"required"`
	ClassifierFile string `validate:"required"`
}

// EngineConfig holds runtime knobs for the scoring engine. The risk
// cut points are the most frequently recalibrated numbers in the
// system, so they are env-tunable; the projection and gate thresholds
// live as defaults in their own packages.
type EngineConfig struct {
	BatchConcurrency int
	StrictMiddleBand bool
	PerformanceCut   float64
	DependenceLow    float64
	DependenceHigh   float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Paths: PathConfig{
			DatasetFile:    getEnvOrDefault("DATASET_FILE", ""),
			ClassifierFile: getEnvOrDefault("CLASSIFIER_FILE", ""),
		},
		Engine: EngineConfig{
			BatchConcurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 8),
			StrictMiddleBand: getEnvBoolOrDefault("RISK_STRICT_MIDDLE", false),
			PerformanceCut:   getEnvFloatOrDefault("RISK_PERFORMANCE_CUT", 0.76),
			DependenceLow:    getEnvFloatOrDefault("RISK_DEPENDENCE_LOW", 0.40),
			DependenceHigh:   getEnvFloatOrDefault("RISK_DEPENDENCE_HIGH", 0.55),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Paths.DatasetFile == "" {
		return errors.ConfigInvalid("DATASET_FILE is required")
	}
	if config.Paths.ClassifierFile == "" {
		return errors.ConfigInvalid("CLASSIFIER_FILE is required")
	}
	if config.Engine.BatchConcurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
	}
	if config.Engine.DependenceLow >= config.Engine.DependenceHigh {
		return errors.ConfigInvalid("RISK_DEPENDENCE_LOW must sit below RISK_DEPENDENCE_HIGH")
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
