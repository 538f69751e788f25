package models

import (
	"time"
)

// Common constants
const (
	// UserSource tags users created through the router
	UserSource = "lambda"

	// ProcessingStatusCompleted is the only status a processing run reports
	ProcessingStatusCompleted = "completed"

	// ProcessingSummary is the human-readable summary attached to every run
	ProcessingSummary = "Data processed successfully"

	// ProcessedDataPrefix is the object key prefix for processing results
	ProcessedDataPrefix = "processed-data/"

	// TimestampLayout is fixed width so timestamps sort lexically in time order
	TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// Timestamp formats t as an ISO-8601 UTC string, the representation stored
// alongside every record.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
