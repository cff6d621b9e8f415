// ABOUTME: Centralized configuration for the pediatric reference system
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pedbot/nelsonref/internal/storage"
)

// Config holds all configuration for the reference system
type Config struct {
	// Database settings
	DBPath string

	// Embedding settings (vectors are computed externally; this only
	// fixes the dimension stored chunks are checked against)
	VectorDimension int

	// Query settings
	SearchLimit int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:          getEnv("NELSONREF_DB", storage.DefaultDBPath()),
		VectorDimension: getEnvInt("NELSONREF_VECTOR_DIMENSION", 1536),
		SearchLimit:     getEnvInt("NELSONREF_SEARCH_LIMIT", 20),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("NELSONREF_DB must not be empty")
	}
	if c.VectorDimension < 0 {
		return fmt.Errorf("NELSONREF_VECTOR_DIMENSION must be >= 0, got %d", c.VectorDimension)
	}
	if c.SearchLimit < 1 || c.SearchLimit > 500 {
		return fmt.Errorf("NELSONREF_SEARCH_LIMIT must be 1-500, got %d", c.SearchLimit)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
