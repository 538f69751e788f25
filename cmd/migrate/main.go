package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/config"
	"demo-app-api/internal/database"
	"demo-app-api/internal/migration"
	"demo-app-api/internal/repositories/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "Database file path (defaults to DB_CONNECTION_STRING)")
		action  = flag.String("action", "up", "Migration action: up, down, status, validate, import")
		file    = flag.String("file", "", "Users JSON export to load (import action)")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cc, err := connectionConfig(&cfg.Database, *dbPath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to resolve database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": cc.DatabasePath,
		"action":  *action,
	}).Info("Starting migration tool")

	if err := run(context.Background(), database.NewConnectionManager(cc), *action, *file, logger); err != nil {
		logger.WithError(err).WithField("action", *action).Fatal("Migration tool failed")
	}

	logger.Info("Migration tool completed successfully")
}

// connectionConfig builds the connection settings from configuration, with
// dbPath overriding the configured file when set
func connectionConfig(dc *config.DatabaseConfig, dbPath string, logger *logrus.Logger) (*database.ConnectionConfig, error) {
	resolved := *dc
	if dbPath != "" {
		resolved.Path = dbPath
	}

	absPath, err := filepath.Abs(resolved.Path)
	if err != nil {
		return nil, err
	}
	resolved.Path = absPath

	if err := resolved.EnsureDirectories(); err != nil {
		return nil, err
	}

	return resolved.ToConnectionConfig(logger), nil
}

func run(ctx context.Context, cm *database.ConnectionManager, action, file string, logger *logrus.Logger) error {
	switch action {
	case "up", "down", "status", "validate":
	case "import":
		if file == "" {
			return fmt.Errorf("-file is required for import")
		}
	default:
		return fmt.Errorf("unknown action %q, use: up, down, status, validate, import", action)
	}

	if err := cm.Connect(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer cm.Close()

	mm := cm.GetMigrationManager()

	switch action {
	case "up":
		return mm.RunMigrations()
	case "import":
		if err := mm.RunMigrations(); err != nil {
			return err
		}
		importer := migration.NewJSONImporter(sqlite.NewUserRepository(cm.GetDB(), logger), logger)
		result, err := importer.ImportFile(ctx, file)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d users, skipped %d\n", result.UsersImported, result.UsersSkipped)
		return nil
	case "down":
		return mm.RollbackMigration()
	case "status":
		status, err := mm.GetMigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		fmt.Printf("Migration Status:\n")
		fmt.Printf("  Version: %d\n", status.Version)
		fmt.Printf("  Applied: %t\n", status.Applied)
		fmt.Printf("  Dirty: %t\n", status.Dirty)
		fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))
		return nil
	default:
		if err := mm.ValidateSchema(); err != nil {
			return fmt.Errorf("schema validation failed: %w", err)
		}
		fmt.Println("Schema validation passed successfully")
		return nil
	}
}
