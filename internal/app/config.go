package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingJWTSecret aborts startup when no signing secret is set. The
// server must never fall back to a default secret.
var ErrMissingJWTSecret = errors.New("app: EVENTLANE_JWT_SECRET is required")

type Config struct {
	JWTSecret string // Required: shared secret for HS256 token signing
	Issuer    string // Optional: issuer claim for tokens (default: eventlane)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./eventlane.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("EVENTLANE_JWT_SECRET"),
		Issuer:              getEnvOrDefault("EVENTLANE_ISSUER", "eventlane"),
		DatabaseFile:        getEnvOrDefault("EVENTLANE_DATABASE_FILE", "eventlane.db"),
		PepperFile:          getEnvOrDefault("EVENTLANE_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, ErrMissingJWTSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer seconds also accepted
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
