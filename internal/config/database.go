package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/database"
)

// DatabaseConfig holds configuration for the local SQLite user store
type DatabaseConfig struct {
	Path            string
	ConnMaxLifetime time.Duration
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if c.ConnMaxLifetime < time.Minute {
		return fmt.Errorf("connection max lifetime must be at least 1 minute")
	}

	return nil
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig.
// Unset fields keep the database package defaults.
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	cc := database.DefaultConnectionConfig()
	if c.Path != "" {
		cc.DatabasePath = c.Path
	}
	if c.ConnMaxLifetime > 0 {
		cc.ConnMaxLifetime = c.ConnMaxLifetime
	}
	if logger != nil {
		cc.Logger = logger
	}
	return cc
}

// EnsureDirectories creates the directory holding the database file
func (c *DatabaseConfig) EnsureDirectories() error {
	if c.Path == ":memory:" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	return nil
}
