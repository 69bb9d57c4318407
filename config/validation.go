package config

import (
	"fmt"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageNone  = "none"
	StorageLocal = "local"
	StorageS3    = "s3"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" && cfg.DBHost == "" {
			add("DB_HOST", "required when DATABASE_URL is not set")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.StorageType {
	case StorageNone, StorageLocal:
	case StorageS3:
		if cfg.S3BucketName == "" {
			add("S3_BUCKET_NAME", "required when STORAGE_TYPE=s3")
		}
	default:
		add("STORAGE_TYPE", fmt.Sprintf("unsupported storage type %q", cfg.StorageType))
	}

	if cfg.AIRateLimit < 0 {
		add("AI_RATE_LIMIT", "must not be negative")
	}

	// Production must never fall back to an unauthenticated database
	if GetEnvironment() == Production && cfg.DBDriver == DriverPostgres &&
		cfg.DatabaseURL == "" && cfg.DBPassword == "" {
		add("DB_PASSWORD", "db_password secret is required in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
