package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"demo-app-api/internal/adapters/storage"
	"demo-app-api/internal/models"
)

// processingService implements the ProcessingService interface
type processingService struct {
	storage storage.FileStorage
	logger  *logrus.Logger
	now     func() time.Time
}

// NewProcessingService creates a processing service writing into the given bucket
func NewProcessingService(fs storage.FileStorage, logger *logrus.Logger) ProcessingService {
	return &processingService{
		storage: fs,
		logger:  logger,
		now:     time.Now,
	}
}

// ProcessData wraps payload in a completed record and stores it as JSON
func (s *processingService) ProcessData(ctx context.Context, payload map[string]any) (*ProcessingResult, error) {
	record := models.NewProcessedRecord(payload, s.now())

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode processed record: %w", err)
	}

	key := record.StorageKey()
	if err := s.storage.Store(ctx, key, data, &storage.StoreOptions{ContentType: "application/json"}); err != nil {
		return nil, fmt.Errorf("failed to store processed record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"record_id":         record.ID,
		"key":               key,
		"records_processed": record.ProcessingResults.RecordsProcessed,
	}).Info("Processed data stored")

	return &ProcessingResult{
		Record:   record,
		Location: s.storage.Location(key),
	}, nil
}
