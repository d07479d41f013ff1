package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath     string
	LogLevel         string
	Port             int
	DevMode          bool
	GeminiAPIKey     string
	NarrativeModel   string
	NarrativeTimeout int // seconds
	MaxSimulations   int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8001),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/finsight.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		NarrativeModel:   getEnv("NARRATIVE_MODEL", "gemini-2.0-flash"),
		NarrativeTimeout: getEnvAsInt("NARRATIVE_TIMEOUT_SECONDS", 20),
		MaxSimulations:   getEnvAsInt("MAX_SIMULATIONS", 100000),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.MaxSimulations < 1 {
		return fmt.Errorf("MAX_SIMULATIONS must be positive")
	}

	// Note: GEMINI_API_KEY is optional; narrative analysis is disabled
	// when it is absent.

	return nil
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
