package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileStorage is an in-memory implementation of FileStorage for testing
type MockFileStorage struct {
	mu     sync.RWMutex
	bucket string
	files  map[string]*mockFile
	errs   map[string]error
}

type mockFile struct {
	data         []byte
	metadata     map[string]string
	contentType  string
	lastModified time.Time
}

// NewMockFileStorage creates a new MockFileStorage instance
func NewMockFileStorage(bucket string) *MockFileStorage {
	return &MockFileStorage{
		bucket: bucket,
		files:  make(map[string]*mockFile),
		errs:   make(map[string]error),
	}
}

// FailOn makes every subsequent call of op ("Store" or "List") return err.
// A nil err clears the failure.
func (m *MockFileStorage) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err == nil {
		delete(m.errs, op)
		return
	}
	m.errs[op] = err
}

// Store implements FileStorage.Store
func (m *MockFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", m.bucket, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.errs["Store"]; err != nil {
		return NewStorageError("Store", m.bucket, key, err)
	}

	contentType := "application/octet-stream"
	var metadata map[string]string
	if opts != nil {
		if opts.ContentType != "" {
			contentType = opts.ContentType
		}
		if opts.Metadata != nil {
			metadata = make(map[string]string, len(opts.Metadata))
			for k, v := range opts.Metadata {
				metadata[k] = v
			}
		}
	}

	m.files[key] = &mockFile{
		data:         append([]byte(nil), data...),
		metadata:     metadata,
		contentType:  contentType,
		lastModified: time.Now(),
	}

	return nil
}

// List implements FileStorage.List
func (m *MockFileStorage) List(ctx context.Context, opts *ListOptions) (*ListResult, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.errs["List"]; err != nil {
		return nil, NewStorageError("List", m.bucket, "", err)
	}

	keys := make([]string, 0, len(m.files))
	for key := range m.files {
		if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
			continue
		}
		if opts.Marker != "" && key <= opts.Marker {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	result := &ListResult{Files: make([]FileMetadata, 0)}
	if len(keys) > maxResults {
		keys = keys[:maxResults]
		result.IsTruncated = true
		result.NextMarker = keys[len(keys)-1]
	}

	for _, key := range keys {
		file := m.files[key]
		result.Files = append(result.Files, FileMetadata{
			Key:          key,
			Size:         int64(len(file.data)),
			ContentType:  file.contentType,
			LastModified: file.lastModified,
			ETag:         fmt.Sprintf("%d-%d", len(file.data), file.lastModified.Unix()),
		})
	}

	return result, nil
}

// Location implements FileStorage.Location
func (m *MockFileStorage) Location(key string) string {
	return fmt.Sprintf("mock://%s/%s", m.bucket, key)
}

// Close implements FileStorage.Close
func (m *MockFileStorage) Close() error {
	return nil
}

// Get returns a copy of the object stored under key and its content type
func (m *MockFileStorage) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), file.data...), file.contentType, true
}

// FileCount returns the number of files in storage (useful for testing)
func (m *MockFileStorage) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
