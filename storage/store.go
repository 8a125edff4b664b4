package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// ObjectStore is the subset of an S3-compatible bucket used for prediction files.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)

	Get(ctx context.Context, key string) (io.ReadCloser, error)

	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	GetPublicURL(key string) string
}
