package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3FileStorage
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3FileStorage implements FileStorage on a single S3 bucket
type S3FileStorage struct {
	client S3API
	bucket string
}

// NewS3FileStorage creates a new S3FileStorage for bucket
func NewS3FileStorage(client S3API, bucket string) (*S3FileStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: s3 client is required", ErrStorageUnavailable)
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	return &S3FileStorage{
		client: client,
		bucket: bucket,
	}, nil
}

// Store implements FileStorage.Store
func (s *S3FileStorage) Store(ctx context.Context, key string, data []byte, opts *StoreOptions) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", s.bucket, key, err)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if opts != nil {
		if opts.ContentType != "" {
			input.ContentType = aws.String(opts.ContentType)
		}
		input.Metadata = opts.Metadata
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return NewStorageError("Store", s.bucket, key, err)
	}

	return nil
}

// List implements FileStorage.List
func (s *S3FileStorage) List(ctx context.Context, opts *ListOptions) (*ListResult, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if opts.Prefix != "" {
		input.Prefix = aws.String(opts.Prefix)
	}
	if opts.Marker != "" {
		input.ContinuationToken = aws.String(opts.Marker)
	}
	if opts.MaxResults > 0 {
		input.MaxKeys = aws.Int32(int32(opts.MaxResults))
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, NewStorageError("List", s.bucket, "", err)
	}

	files := make([]FileMetadata, 0, len(out.Contents))
	for _, obj := range out.Contents {
		files = append(files, FileMetadata{
			Key:          aws.ToString(obj.Key),
			Size:         aws.ToInt64(obj.Size),
			LastModified: aws.ToTime(obj.LastModified),
			ETag:         aws.ToString(obj.ETag),
		})
	}

	return &ListResult{
		Files:       files,
		NextMarker:  aws.ToString(out.NextContinuationToken),
		IsTruncated: aws.ToBool(out.IsTruncated),
	}, nil
}

// Location implements FileStorage.Location
func (s *S3FileStorage) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

// Close implements FileStorage.Close
func (s *S3FileStorage) Close() error {
	return nil
}
