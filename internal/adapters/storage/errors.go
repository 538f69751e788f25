package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Common storage error types
var (
	ErrInvalidKey         = errors.New("invalid storage key")
	ErrStorageUnavailable = errors.New("storage service unavailable")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op     string // Operation that failed (e.g., "Store", "List")
	Bucket string // Bucket the operation targeted
	Key    string // Storage key involved in the operation
	Err    error  // Underlying error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage %s operation failed for key '%s' in bucket '%s': %v", e.Op, e.Key, e.Bucket, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed in bucket '%s': %v", e.Op, e.Bucket, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, bucket, key string, err error) *StorageError {
	return &StorageError{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// IsInvalidKey returns true if the error was caused by a malformed key
func IsInvalidKey(err error) bool {
	return errors.Is(err, ErrInvalidKey)
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	// Prevent directory traversal attacks
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}

	return nil
}
