package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost         string   `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	ServerPort         string   `env:"SERVER_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Database configuration
	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER" envDefault:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" envDefault:"cookbook"`
	DBSSLMode   string `env:"DB_SSL_MODE" envDefault:"disable"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"data/cookbook.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Redis configuration
	RedisURL      string        `env:"REDIS_URL"`
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	AIRateLimit   int           `env:"AI_RATE_LIMIT" envDefault:"20"`
	AIRateWindow  time.Duration `env:"AI_RATE_WINDOW" envDefault:"1h"`

	// OpenAI configuration
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIChatURL    string `env:"OPENAI_CHAT_URL" envDefault:"https://api.openai.com/v1/chat/completions"`
	OpenAIImagesURL  string `env:"OPENAI_IMAGES_URL" envDefault:"https://api.openai.com/v1/images/generations"`
	DescriptionModel string `env:"DESCRIPTION_MODEL" envDefault:"gpt-4o"`
	ImageModel       string `env:"IMAGE_MODEL" envDefault:"dall-e-3"`

	// Generated image storage
	StorageType          string `env:"STORAGE_TYPE" envDefault:"none"`
	StorageLocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"data/images"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"/files"`
	S3BucketName         string `env:"S3_BUCKET_NAME"`
	AWSRegion            string `env:"AWS_REGION" envDefault:"us-east-1"`
	S3Endpoint           string `env:"S3_ENDPOINT"`
	S3AccessKeyID        string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey    string `env:"S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle     bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Docker secrets fill in whatever the environment left empty
	fillFromSecret(&cfg.DBPassword, "db_password")
	fillFromSecret(&cfg.RedisPassword, "redis_password")
	fillFromSecret(&cfg.OpenAIAPIKey, "openai_api_key")
	fillFromSecret(&cfg.S3SecretAccessKey, "s3_secret_access_key")

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrateURL returns the connection string in URL form, as golang-migrate expects it
func (c *Config) MigrateURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func fillFromSecret(field *string, name string) {
	if *field != "" {
		return
	}
	*field = readSecret(name)
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
