// Package config reads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Session SessionConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
	// AllowedOrigins feeds the CORS middleware. The dev frontend runs on
	// its own port, so cross-origin requests are the normal case.
	AllowedOrigins []string
	// MaxUploadMB caps the multipart body size of dataset uploads.
	MaxUploadMB int
}

// BackendConfig holds the analytics backend connection settings
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	// TrainTimeout is separate: model competitions routinely outlive the
	// default request timeout.
	TrainTimeout time.Duration
}

// SessionConfig holds session store settings. DatabaseURL is optional; when
// empty, sessions live in process memory.
type SessionConfig struct {
	DatabaseURL string
	TTL         time.Duration
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8000"
	}

	ttl := getEnvDurationOrDefault("SESSION_TTL", 4*time.Hour)
	if ttl <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
	}

	config := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			AllowedOrigins: []string{getEnvOrDefault("ALLOWED_ORIGIN", "http://localhost:5173")},
			MaxUploadMB:    getEnvIntOrDefault("MAX_UPLOAD_MB", 50),
		},
		Backend: BackendConfig{
			BaseURL:      backendURL,
			Timeout:      getEnvDurationOrDefault("BACKEND_TIMEOUT", 30*time.Second),
			TrainTimeout: getEnvDurationOrDefault("BACKEND_TRAIN_TIMEOUT", 5*time.Minute),
		},
		Session: SessionConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			TTL:         ttl,
		},
	}
	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
