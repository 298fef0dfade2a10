package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Remote    RemoteConfig
	Sync      SyncConfig
}

// DatabaseConfig holds local database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// RemoteConfig holds the backend API connection settings
type RemoteConfig struct {
	BaseURL  string
	APIToken string
	Timeout  int // seconds per request
}

// SyncConfig holds sync engine and hydration settings
type SyncConfig struct {
	Enabled          bool
	DrainInterval    int // seconds between periodic drain ticks
	HydrateInterval  int // minutes between cache hydration pulls
	HealthInterval   int // seconds between connectivity probes
	HydrateOnStartup bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	remoteURL := os.Getenv("REMOTE_API_URL")
	if remoteURL == "" {
		return nil, fmt.Errorf("REMOTE_API_URL is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "smartpos"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Remote: RemoteConfig{
			BaseURL:  remoteURL,
			APIToken: os.Getenv("REMOTE_API_TOKEN"),
			Timeout:  getEnvInt("REMOTE_API_TIMEOUT", 10),
		},
		Sync: SyncConfig{
			Enabled:          getEnv("SYNC_ENABLED", "true") == "true",
			DrainInterval:    getEnvInt("SYNC_DRAIN_INTERVAL", 30),
			HydrateInterval:  getEnvInt("SYNC_HYDRATE_INTERVAL", 15),
			HealthInterval:   getEnvInt("SYNC_HEALTH_INTERVAL", 10),
			HydrateOnStartup: getEnv("SYNC_HYDRATE_ON_STARTUP", "true") == "true",
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
