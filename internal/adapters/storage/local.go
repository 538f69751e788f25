package storage

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const defaultMaxResults = 1000

// LocalFileStorage implements FileStorage on the local filesystem. Each bucket
// is a directory under basePath.
type LocalFileStorage struct {
	basePath string
	bucket   string
}

// NewLocalFileStorage creates a new LocalFileStorage instance
func NewLocalFileStorage(basePath, bucket string) (*LocalFileStorage, error) {
	root := filepath.Join(basePath, bucket)

	// Ensure bucket directory exists
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, NewStorageError("NewLocalFileStorage", bucket, "", err)
	}

	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, NewStorageError("NewLocalFileStorage", bucket, "", err)
	}

	return &LocalFileStorage{
		basePath: absPath,
		bucket:   bucket,
	}, nil
}

// Store implements FileStorage.Store
func (l *LocalFileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", l.bucket, key, err)
	}

	filePath := l.getFilePath(key)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return NewStorageError("Store", l.bucket, key, err)
	}

	// Write file atomically by writing to temp file first
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return NewStorageError("Store", l.bucket, key, err)
	}

	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return NewStorageError("Store", l.bucket, key, err)
	}

	return nil
}

// List implements FileStorage.List. Keys are returned in lexical order.
func (l *LocalFileStorage) List(ctx context.Context, opts *ListOptions) (*ListResult, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	// WalkDir order differs from key order ("a/b" before "a.txt"), so collect
	// every match before applying the marker.
	entries := make(map[string]fs.DirEntry)
	keys := make([]string, 0)

	err := filepath.WalkDir(l.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || strings.HasSuffix(path, ".tmp") {
			return nil
		}

		relPath, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(relPath)

		if opts.Prefix != "" && !strings.HasPrefix(key, opts.Prefix) {
			return nil
		}
		if opts.Marker != "" && key <= opts.Marker {
			return nil
		}

		entries[key] = d
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return nil, NewStorageError("List", l.bucket, "", err)
	}

	sort.Strings(keys)

	truncated := len(keys) > maxResults
	if truncated {
		keys = keys[:maxResults]
	}

	files := make([]FileMetadata, 0, len(keys))
	for _, key := range keys {
		info, err := entries[key].Info()
		if err != nil {
			return nil, NewStorageError("List", l.bucket, key, err)
		}

		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		files = append(files, FileMetadata{
			Key:          key,
			Size:         info.Size(),
			ContentType:  contentType,
			LastModified: info.ModTime(),
			ETag:         fmt.Sprintf("%d-%d", info.Size(), info.ModTime().Unix()),
		})
	}

	result := &ListResult{
		Files:       files,
		IsTruncated: truncated,
	}
	if truncated {
		result.NextMarker = files[len(files)-1].Key
	}

	return result, nil
}

// Location implements FileStorage.Location
func (l *LocalFileStorage) Location(key string) string {
	return "file://" + filepath.ToSlash(l.getFilePath(key))
}

// Close implements FileStorage.Close
func (l *LocalFileStorage) Close() error {
	// No resources to clean up for local storage
	return nil
}

func (l *LocalFileStorage) getFilePath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}
