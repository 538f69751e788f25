package storage

import (
	"fmt"
	"strings"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates FileStorage instances based on configuration
type Factory struct {
	s3Client S3API
}

// NewFactory creates a new storage factory. s3Client may be nil when no S3
// storage will be created.
func NewFactory(s3Client S3API) *Factory {
	return &Factory{
		s3Client: s3Client,
	}
}

// Create creates a FileStorage instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (FileStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}
	if config.Bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}

	var storage FileStorage
	var err error

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeLocal:
		storage, err = f.createLocalStorage(config)
	case StorageTypeS3:
		storage, err = NewS3FileStorage(f.s3Client, config.Bucket)
	case StorageTypeMock:
		storage = NewMockFileStorage(config.Bucket)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	return storage, nil
}

// createLocalStorage creates a local filesystem storage implementation
func (f *Factory) createLocalStorage(config *StorageConfig) (FileStorage, error) {
	basePath := config.BasePath
	if basePath == "" {
		basePath = "./storage" // Default path
	}

	return NewLocalFileStorage(basePath, config.Bucket)
}
