// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultMaxBodyBytes caps request bodies at 1 MiB.
const DefaultMaxBodyBytes int64 = 1 << 20

// Config holds all configuration values for the API server and the ingest job.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to restrict.
	CORSOrigins []string

	// MaxBodyBytes limits request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SnapshotPath is where the ingest job writes its JSON snapshot.
	// Defaults to "output/spots.json".
	SnapshotPath string

	// IngestSchedule is a cron expression. Empty means run once and exit.
	IngestSchedule string

	// SourceFile is an optional YAML or JSON seed file ingested alongside the
	// built-in sample source.
	SourceFile string

	// Apple holds Sign in with Apple verification settings.
	Apple AppleConfig
}

// AppleConfig configures id_token verification.
type AppleConfig struct {
	Issuer   string
	JWKSURL  string
	ClientID string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment take precedence over it.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config.Load: read .env: %w", err)
	}

	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "*")),
		SnapshotPath:   getEnv("SNAPSHOT_PATH", "output/spots.json"),
		IngestSchedule: os.Getenv("INGEST_SCHEDULE"),
		SourceFile:     os.Getenv("SOURCE_FILE"),
		Apple: AppleConfig{
			Issuer:   getEnv("APPLE_ISSUER", "https://appleid.apple.com"),
			JWKSURL:  getEnv("APPLE_JWKS_URL", "https://appleid.apple.com/auth/keys"),
			ClientID: getEnv("APPLE_CLIENT_ID", "com.ittyan.FamilyOutings"),
		},
	}

	maxBody, err := getEnvInt64("MAX_BODY_BYTES", DefaultMaxBodyBytes)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt64 parses a positive integer variable, returning fallback when unset.
func getEnvInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
