package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	GRPC     GRPCConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string // "sqlite3" (default) or "mysql"
	Path   string // SQLite database file path
	DSN    string // MySQL DSN, used when Driver is "mysql"
}

// Source returns the connection string for the configured driver.
func (d DatabaseConfig) Source() string {
	if d.Driver == "mysql" {
		return d.DSN
	}
	return d.Path
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string // gRPC server listen address (e.g., ":50051")
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address      string // HTTP listen address (e.g., ":3000")
	SecureCookie bool   // set the Secure flag on the session cookie
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret  string        // JWT signing secret
	SessionTTL time.Duration // lifetime of issued session tokens
}

// Load loads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg, err := load("")
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return load("dev-secret-change-me")
}

func load(defaultSecret string) (*Config, error) {
	ttlHours, err := getEnvInt("SESSION_TTL_HOURS", 31*24)
	if err != nil {
		return nil, err
	}
	if ttlHours <= 0 {
		return nil, fmt.Errorf("SESSION_TTL_HOURS must be positive, got %d", ttlHours)
	}
	secure, err := getEnvBool("COOKIE_SECURE", false)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite3"),
			Path:   getEnv("DB_PATH", "app.db"),
			DSN:    getEnv("DB_DSN", ""),
		},
		GRPC: GRPCConfig{
			Address: getEnv("GRPC_ADDRESS", ":50051"),
		},
		HTTP: HTTPConfig{
			Address:      getEnv("HTTP_ADDRESS", ":3000"),
			SecureCookie: secure,
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", defaultSecret),
			SessionTTL: time.Duration(ttlHours) * time.Hour,
		},
	}
	switch cfg.Database.Driver {
	case "sqlite3":
	case "mysql":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when DB_DRIVER=mysql")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	db := c.Database.Path
	if c.Database.Driver == "mysql" {
		db = "mysql (dsn masked)"
	}
	return fmt.Sprintf("Config{DB: %s, gRPC: %s, HTTP: %s, Auth: *** (masked) ***, SessionTTL: %s}",
		db, c.GRPC.Address, c.HTTP.Address, c.Auth.SessionTTL)
}
