package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/models"
	"demo-app-api/internal/repositories"
)

// analyticsService implements the AnalyticsService interface
type analyticsService struct {
	userRepo repositories.UserRepository
	files    storage.FileStorage
	logger   *logrus.Logger
	now      func() time.Time
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(userRepo repositories.UserRepository, files storage.FileStorage, logger *logrus.Logger) AnalyticsService {
	return &analyticsService{
		userRepo: userRepo,
		files:    files,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAnalytics computes a snapshot of the store sizes and the current invocation
func (s *analyticsService) GetAnalytics(ctx context.Context, inv *Invocation) (*models.AnalyticsSnapshot, error) {
	if inv == nil {
		inv = &Invocation{}
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	// A failed listing reports zero files rather than failing the snapshot
	totalFiles, err := storage.CountObjects(ctx, s.files, "")
	if err != nil {
		s.logger.WithError(err).Warn("Failed to count stored files")
		totalFiles = 0
	}

	region, err := models.RegionFromARN(inv.InvokedFunctionARN)
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsSnapshot{
		TotalUsers:        totalUsers,
		TotalFiles:        totalFiles,
		LambdaInvocations: inv.RemainingTimeMillis,
		Timestamp:         models.Timestamp(s.now()),
		Region:            region,
		FunctionName:      inv.FunctionName,
	}, nil
}
