package models

import (
	"time"

	"github.com/google/uuid"
)

// ProcessingResults summarises a processing run
type ProcessingResults struct {
	Status           string `json:"status"`
	RecordsProcessed int    `json:"recordsProcessed"`
	Summary          string `json:"summary"`
}

// ProcessedRecord is the result document written to object storage
type ProcessedRecord struct {
	ID                string            `json:"id"`
	OriginalData      map[string]any    `json:"originalData"`
	ProcessedAt       string            `json:"processedAt"`
	ProcessingResults ProcessingResults `json:"processingResults"`
}

// NewProcessedRecord builds a completed record for the given payload. Only the
// length of a "records" array is inspected; everything else is kept verbatim.
func NewProcessedRecord(payload map[string]any, now time.Time) *ProcessedRecord {
	if payload == nil {
		payload = map[string]any{}
	}

	return &ProcessedRecord{
		ID:           uuid.New().String(),
		OriginalData: payload,
		ProcessedAt:  Timestamp(now),
		ProcessingResults: ProcessingResults{
			Status:           ProcessingStatusCompleted,
			RecordsProcessed: CountRecords(payload),
			Summary:          ProcessingSummary,
		},
	}
}

// CountRecords returns the length of payload["records"] when it is an array
func CountRecords(payload map[string]any) int {
	records, ok := payload["records"].([]any)
	if !ok {
		return 0
	}
	return len(records)
}

// StorageKey returns the object key the record is stored under
func (r *ProcessedRecord) StorageKey() string {
	return ProcessedDataPrefix + r.ID + ".json"
}
