package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/adapters/email"
	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/config"
	"demo-app-api/internal/database"
	"demo-app-api/internal/handlers"
	"demo-app-api/internal/repositories"
	"demo-app-api/internal/repositories/dynamo"
	"demo-app-api/internal/repositories/memory"
	"demo-app-api/internal/repositories/sqlite"
	"demo-app-api/internal/router"
	"demo-app-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config            *config.Config
	Logger            *logrus.Logger
	UserService       services.UserService
	ProcessingService services.ProcessingService
	AnalyticsService  services.AnalyticsService
	Router            *router.Router

	// Files is the files bucket; analytics counts it and the local server lists it
	Files storage.FileStorage

	// Internal dependencies
	db       *sql.DB
	storages []storage.FileStorage
}

// NewContainer creates a new dependency injection container. clients may be
// nil; AWS clients the configuration needs are then built from the default
// AWS config.
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger, clients *Clients) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = config.NewLogger(cfg)
	}
	if clients == nil {
		clients = &Clients{}
	}

	if needsAWS(cfg) {
		if err := fillClients(ctx, cfg, clients); err != nil {
			return nil, err
		}
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	userRepo, err := c.createUserRepository(clients)
	if err != nil {
		c.Close()
		return nil, err
	}

	factory := storage.NewFactory(clients.S3)
	processed, err := c.createStorage(factory, cfg.Storage.ProcessedDataBucket)
	if err != nil {
		c.Close()
		return nil, err
	}
	files, err := c.createStorage(factory, cfg.Storage.FilesBucket)
	if err != nil {
		c.Close()
		return nil, err
	}

	sender, err := email.NewSender(cfg.Email.Provider, clients.SES, &email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	}, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create email sender: %w", err)
	}

	notifier := services.NewWelcomeNotifier(sender, cfg.Email.From, logger)
	c.UserService = services.NewUserService(userRepo, notifier, logger)
	c.ProcessingService = services.NewProcessingService(processed, logger)
	c.AnalyticsService = services.NewAnalyticsService(userRepo, files, logger)
	c.Files = files

	c.Router = router.New(logger)
	router.SetupRoutes(c.Router, &router.RouterConfig{
		UserHandler:       handlers.NewUserHandler(c.UserService),
		ProcessingHandler: handlers.NewProcessingHandler(c.ProcessingService),
		AnalyticsHandler:  handlers.NewAnalyticsHandler(c.AnalyticsService),
	})

	logger.WithFields(logrus.Fields{
		"users_store": cfg.Users.StoreType,
		"storage":     cfg.Storage.Type,
		"email":       cfg.Email.Provider,
		"aws_region":  cfg.AWS.Region,
		"environment": cfg.Environment,
		"mode":        config.GetDeploymentMode(),
	}).Info("Container initialized")

	return c, nil
}

func (c *Container) createUserRepository(clients *Clients) (repositories.UserRepository, error) {
	switch c.Config.Users.StoreType {
	case "dynamodb":
		return dynamo.NewUserRepository(clients.DynamoDB, c.Config.Users.Table, c.Logger), nil
	case "sqlite":
		if err := c.Config.Database.EnsureDirectories(); err != nil {
			return nil, err
		}
		db, err := database.InitializeDatabase(c.Config.Database.Path, c.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.db = db
		return sqlite.NewUserRepository(db, c.Logger), nil
	case "memory":
		return memory.NewUserRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported user store type: %s", c.Config.Users.StoreType)
	}
}

func (c *Container) createStorage(factory *storage.Factory, bucket string) (storage.FileStorage, error) {
	fs, err := factory.Create(&storage.StorageConfig{
		Type:     c.Config.Storage.Type,
		BasePath: c.Config.Storage.LocalPath,
		Bucket:   bucket,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage for bucket %s: %w", bucket, err)
	}
	c.storages = append(c.storages, fs)
	return fs, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	var errs []error

	for _, fs := range c.storages {
		if err := fs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}
	c.storages = nil

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
		c.db = nil
	}

	return errors.Join(errs...)
}
