package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	AWS         AWSConfig
	Users       UsersConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Email       EmailConfig
	SMTP        SMTPConfig
	RateLimit   RateLimitConfig
	Server      ServerConfig
}

// AWSConfig holds AWS SDK configuration
type AWSConfig struct {
	Region      string
	EndpointURL string // optional, e.g. LocalStack
}

// UsersConfig selects the user store backend
type UsersConfig struct {
	StoreType string // "dynamodb", "sqlite" or "memory"
	Table     string
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type                string // "s3", "local" or "mock"
	LocalPath           string
	ProcessedDataBucket string
	FilesBucket         string
}

// EmailConfig holds email delivery configuration
type EmailConfig struct {
	Provider string // "ses", "smtp", "log" or "mock"
	From     string
}

// SMTPConfig holds SMTP relay configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// RateLimitConfig holds the local server rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// ServerConfig holds local HTTP server limits
type ServerConfig struct {
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return loadFrom(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8081")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("USERS_STORE_TYPE", "memory")
	v.SetDefault("USERS_TABLE", "demo-users")
	v.SetDefault("DB_CONNECTION_STRING", "./data/users.db")
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)
	v.SetDefault("STORAGE_TYPE", "local")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/files")
	v.SetDefault("PROCESSED_DATA_BUCKET", "demo-processed-data")
	v.SetDefault("FILES_BUCKET", "demo-storage")
	v.SetDefault("EMAIL_PROVIDER", "log")
	v.SetDefault("EMAIL_FROM", "noreply@demo-app.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("MAX_BODY_BYTES", 10<<20)
	v.SetDefault("SHUTDOWN_TIMEOUT", 30*time.Second)

	return v
}

func loadFrom(v *viper.Viper) (*Config, error) {
	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		AWS: AWSConfig{
			Region:      v.GetString("AWS_REGION"),
			EndpointURL: v.GetString("AWS_ENDPOINT_URL"),
		},
		Users: UsersConfig{
			StoreType: strings.ToLower(v.GetString("USERS_STORE_TYPE")),
			Table:     v.GetString("USERS_TABLE"),
		},
		Database: DatabaseConfig{
			Path:            v.GetString("DB_CONNECTION_STRING"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Storage: StorageConfig{
			Type:                strings.ToLower(v.GetString("STORAGE_TYPE")),
			LocalPath:           v.GetString("STORAGE_LOCAL_PATH"),
			ProcessedDataBucket: v.GetString("PROCESSED_DATA_BUCKET"),
			FilesBucket:         v.GetString("FILES_BUCKET"),
		},
		Email: EmailConfig{
			Provider: strings.ToLower(v.GetString("EMAIL_PROVIDER")),
			From:     v.GetString("EMAIL_FROM"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Server: ServerConfig{
			MaxBodyBytes:    v.GetInt64("MAX_BODY_BYTES"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the selected backends are known and fully configured
func (c *Config) Validate() error {
	switch c.Users.StoreType {
	case "dynamodb":
		if c.Users.Table == "" {
			return fmt.Errorf("USERS_TABLE is required for the dynamodb user store")
		}
	case "sqlite":
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported user store type: %s", c.Users.StoreType)
	}

	switch c.Storage.Type {
	case "s3", "local", "mock":
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.ProcessedDataBucket == "" || c.Storage.FilesBucket == "" {
		return fmt.Errorf("PROCESSED_DATA_BUCKET and FILES_BUCKET are required")
	}

	switch c.Email.Provider {
	case "ses", "smtp", "log", "mock":
	default:
		return fmt.Errorf("unsupported email provider: %s", c.Email.Provider)
	}
	if c.Email.From == "" {
		return fmt.Errorf("EMAIL_FROM is required")
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit must be positive")
	}

	return nil
}
