package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Rate limiting is disabled when neither RedisURL nor RedisHost is set.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret     string
	JWTExpiration time.Duration

	// ElevatedRole may update and delete recipes owned by other users.
	ElevatedRole string

	LogLevel  string
	LogFormat string

	CORSOrigins []string

	// Mutations allowed per user per hour
	RateLimitCreate int
	RateLimitModify int
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a redis connection is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case Development, Test, CI:
		if err := loadEnvConfig(cfg, env); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads environment variables, falling back to local defaults. CI gets no
// default for secrets so a missing one fails validation.
func loadEnvConfig(cfg *Config, env Environment) error {
	secretDefault := func(v string) string {
		if env == CI {
			return ""
		}
		return v
	}

	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", secretDefault("postgres"))
	cfg.DBName = getEnv("DB_NAME", "recipebook")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.JWTSecret = getEnv("JWT_SECRET", secretDefault("your-secret-key"))

	return loadCommon(cfg)
}

// loadProdConfig loads configuration for production: credentials come ONLY from Docker
// secrets, everything else from the environment.
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "require")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")

	return loadCommon(cfg)
}

func loadCommon(cfg *Config) error {
	var err error

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.JWTExpiration, err = time.ParseDuration(getEnv("JWT_EXPIRATION", "24h"))
	if err != nil {
		return fmt.Errorf("invalid JWT_EXPIRATION: %w", err)
	}
	cfg.RateLimitCreate, err = strconv.Atoi(getEnv("RATE_LIMIT_CREATE", "30"))
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_CREATE: %w", err)
	}
	cfg.RateLimitModify, err = strconv.Atoi(getEnv("RATE_LIMIT_MODIFY", "60"))
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_MODIFY: %w", err)
	}

	cfg.ElevatedRole = getEnv("ELEVATED_ROLE", "ROLE_ADMIN")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
