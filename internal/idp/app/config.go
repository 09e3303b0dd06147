package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer    string // Issuer URL: base for tokens and the discovery document
	SecretKey string // HS256 secret for ID token signing
	Algorithm string // Informational: the only supported value is HS256

	AccessTTL  time.Duration // Access token lifetime (default: 1h)
	RefreshTTL time.Duration // Refresh token lifetime (default: 30 days)
	CodeTTL    time.Duration // Authorization code lifetime (default: 10m)

	DatabaseFile string // Path to SQLite database file; empty selects the in-memory store

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	// Seed settings: an admin user and a fixed demo client created at startup
	// when absent, so a fresh deployment is immediately usable.
	SeedUsername           string
	SeedPassword           string
	SeedEmail              string
	SeedFullName           string
	SeedClientID           string
	SeedClientSecret       string
	SeedClientName         string
	SeedClientRedirectURIs []string
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("IDP_ISSUER", "http://localhost:8080"),
		SecretKey: getEnvOrDefault("IDP_SECRET_KEY", "dev-secret-change-this-in-production"),
		Algorithm: getEnvOrDefault("IDP_ALGORITHM", "HS256"),

		AccessTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", 1*time.Hour),
		RefreshTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", 30*24*time.Hour),
		CodeTTL:    getEnvDurationOrDefault("AUTH_CODE_TTL", 10*time.Minute),

		DatabaseFile: os.Getenv("IDP_DATABASE_FILE"), // Optional: empty means in-memory

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),

		SeedUsername:     getEnvOrDefault("IDP_SEED_USERNAME", "admin"),
		SeedPassword:     getEnvOrDefault("IDP_SEED_PASSWORD", "admin123"),
		SeedEmail:        getEnvOrDefault("IDP_SEED_EMAIL", "admin@example.com"),
		SeedFullName:     getEnvOrDefault("IDP_SEED_FULL_NAME", "Administrator"),
		SeedClientID:     getEnvOrDefault("IDP_SEED_CLIENT_ID", "test_client"),
		SeedClientSecret: getEnvOrDefault("IDP_SEED_CLIENT_SECRET", "test-secret-change-in-production"),
		SeedClientName:   getEnvOrDefault("IDP_SEED_CLIENT_NAME", "Test Client"),
		SeedClientRedirectURIs: splitCommaList(getEnvOrDefault(
			"IDP_SEED_CLIENT_REDIRECT_URIS",
			"http://localhost:3000/callback,http://127.0.0.1:3000/callback,http://localhost:8080/callback",
		)),
	}

	return cfg
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
