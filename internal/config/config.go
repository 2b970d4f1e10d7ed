package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Model backends
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Config holds all configuration for the premium backend
type Config struct {
	Port              string
	Env               string
	DatabaseURL       string
	MigrationsEnabled bool
	ArtifactsDir      string
	ModelBackend      string
	MLServiceURL      string
	MLTimeout         time.Duration
	LogLevel          string
	LogFormat         string
}

// Load reads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("GO_ENV", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MigrationsEnabled: getEnvBool("MIGRATIONS_ENABLED", true),
		ArtifactsDir:      getEnv("ARTIFACTS_DIR", "./artifacts"),
		ModelBackend:      strings.ToLower(getEnv("MODEL_BACKEND", BackendLocal)),
		MLServiceURL:      getEnv("ML_SERVICE_URL", "http://localhost:8000"),
		MLTimeout:         time.Duration(getEnvInt("ML_TIMEOUT_SECONDS", 30)) * time.Second,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
