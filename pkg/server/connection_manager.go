package server

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/config"
)

// ConnectionManager builds the container once per execution environment and
// hands the same instance to every invocation. A failed build is retried on
// the next call.
type ConnectionManager struct {
	mu        sync.Mutex
	container *Container
	build     func(ctx context.Context) (*Container, error)
}

// NewConnectionManager creates a manager that loads the optimized config and
// builds a container on first use
func NewConnectionManager() *ConnectionManager {
	return NewConnectionManagerWith(func(ctx context.Context) (*Container, error) {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, err
		}
		return NewContainer(ctx, cfg, config.NewLogger(cfg), nil)
	})
}

// NewConnectionManagerWith creates a manager using build to construct the container
func NewConnectionManagerWith(build func(ctx context.Context) (*Container, error)) *ConnectionManager {
	return &ConnectionManager{build: build}
}

// GetContainer returns the container, building it if necessary
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		container, err := cm.build(ctx)
		if err != nil {
			return nil, err
		}
		cm.container = container
	}

	return cm.container, nil
}

// Cleanup closes the container. The next GetContainer builds a new one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	if err != nil {
		cm.container.Logger.WithError(err).Warn("Failed to close container")
	}
	cm.container = nil
	return err
}

// Logger returns the container logger, or the standard logger before the
// container exists
func (cm *ConnectionManager) Logger() *logrus.Logger {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil && cm.container.Logger != nil {
		return cm.container.Logger
	}
	return logrus.StandardLogger()
}
