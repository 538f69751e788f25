package storage

import (
	"context"
	"time"
)

// FileMetadata represents metadata about a stored object
type FileMetadata struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type,omitempty"`
	LastModified time.Time `json:"last_modified"`
	ETag         string    `json:"etag,omitempty"`
}

// ListOptions provides options for listing objects
type ListOptions struct {
	Prefix     string `json:"prefix,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
	Marker     string `json:"marker,omitempty"` // For pagination
}

// ListResult represents a single page of a list operation
type ListResult struct {
	Files       []FileMetadata `json:"files"`
	NextMarker  string         `json:"next_marker,omitempty"` // For pagination
	IsTruncated bool           `json:"is_truncated"`
}

// StoreOptions provides options for storing objects
type StoreOptions struct {
	ContentType string            `json:"content_type,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FileStorage is an object store bound to a single bucket. Store always
// overwrites an existing object with the same key.
type FileStorage interface {
	// Store saves data under key
	Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error

	// List returns one page of objects matching the given options
	List(ctx context.Context, opts *ListOptions) (*ListResult, error)

	// Location returns the provider-specific descriptor of key, e.g. s3://bucket/key
	Location(key string) string

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type     string `json:"type" yaml:"type"`           // "local", "s3", "mock"
	BasePath string `json:"base_path" yaml:"base_path"` // For local storage
	Bucket   string `json:"bucket" yaml:"bucket"`
}

// CountObjects walks every page of a listing and returns the number of objects
func CountObjects(ctx context.Context, fs FileStorage, prefix string) (int64, error) {
	var total int64
	opts := &ListOptions{Prefix: prefix}

	for {
		page, err := fs.List(ctx, opts)
		if err != nil {
			return 0, err
		}
		total += int64(len(page.Files))

		if !page.IsTruncated || page.NextMarker == "" {
			return total, nil
		}
		opts = &ListOptions{Prefix: prefix, Marker: page.NextMarker}
	}
}
