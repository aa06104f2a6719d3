// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"qsim/internal/logging"
	"qsim/internal/state"
)

// Config holds application configuration
type Config struct {
	LogLevel  string
	LogPretty bool
	MaxQubits int
	Precision int
	Workers   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the environment without touching .env or validating.
func FromEnv() *Config {
	return &Config{
		LogLevel:  getEnv("QSIM_LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("QSIM_LOG_PRETTY", true),
		MaxQubits: getEnvAsInt("QSIM_MAX_QUBITS", 20),
		Precision: getEnvAsInt("QSIM_PRECISION", 4),
		Workers:   getEnvAsInt("QSIM_WORKERS", runtime.GOMAXPROCS(0)),
	}
}

// Validate rejects settings the engine cannot honor
func (c *Config) Validate() error {
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("QSIM_LOG_LEVEL %q is not a log level", c.LogLevel)
	}
	if c.MaxQubits < 1 || c.MaxQubits > state.MaxQubits {
		return fmt.Errorf("QSIM_MAX_QUBITS must be between 1 and %d, got %d", state.MaxQubits, c.MaxQubits)
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("QSIM_PRECISION must be between 0 and 15, got %d", c.Precision)
	}
	if c.Workers < 1 {
		return fmt.Errorf("QSIM_WORKERS must be positive, got %d", c.Workers)
	}
	return nil
}

// Logging returns the logger settings.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.LogLevel, Pretty: c.LogPretty}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
