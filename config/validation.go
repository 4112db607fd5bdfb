package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks the values every environment needs, and the production-only ones.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_NAME":     cfg.DBName,
		"DB_USER":     cfg.DBUser,
		"DB_PASSWORD": cfg.DBPassword,
		"JWT_SECRET":  cfg.JWTSecret,
	}
	// Fixed order keeps error output stable.
	for _, field := range []string{"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "JWT_SECRET"} {
		if required[field] == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	if cfg.ElevatedRole == "" {
		errs = append(errs, ValidationError{Field: "ELEVATED_ROLE", Message: "must not be empty"})
	}
	if cfg.JWTExpiration <= 0 {
		errs = append(errs, ValidationError{Field: "JWT_EXPIRATION", Message: "must be positive"})
	}
	if cfg.RateLimitCreate < 1 || cfg.RateLimitModify < 1 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "limits must be at least 1"})
	}

	if GetEnvironment() == Production {
		if cfg.JWTSecret == "your-secret-key" {
			errs = append(errs, ValidationError{Field: "jwt_secret", Message: "must not use the development default"})
		}
		if cfg.DBSSLMode == "disable" {
			errs = append(errs, ValidationError{Field: "DB_SSL_MODE", Message: "must not be disabled in production"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
