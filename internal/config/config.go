package config

import (
	"os"
	"strconv"

	"simlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Simulation SimulationConfig
	Export     ExportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	UIPort  string
	APIPort string
	GinMode string
}

// DatabaseConfig holds the optional run-store connection settings.
// Persistence is a supplement to the simulator: when URL is empty the
// services run without a repository.
type DatabaseConfig struct {
	URL string
}

// SimulationConfig holds runner defaults that the request parameters
// do not override
type SimulationConfig struct {
	MaxWorkers    int
	DefaultTrials int
	HistogramBins int
}

// ExportConfig holds workbook export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			UIPort:  getEnvOrDefault("PORT", "8080"),
			APIPort: getEnvOrDefault("API_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Simulation: SimulationConfig{
			MaxWorkers:    getEnvIntOrDefault("SIM_MAX_WORKERS", 4),
			DefaultTrials: getEnvIntOrDefault("SIM_DEFAULT_TRIALS", 2000),
			HistogramBins: getEnvIntOrDefault("SIM_HISTOGRAM_BINS", 40),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.UIPort == "" {
		return errors.ConfigInvalid("UI port is required")
	}
	if config.Simulation.MaxWorkers < 1 {
		return errors.ConfigInvalid("SIM_MAX_WORKERS must be at least 1")
	}
	if config.Simulation.HistogramBins < 2 {
		return errors.ConfigInvalid("SIM_HISTOGRAM_BINS must be at least 2")
	}
	if config.Simulation.DefaultTrials < 1 {
		return errors.ConfigInvalid("SIM_DEFAULT_TRIALS must be at least 1")
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
