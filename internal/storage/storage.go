package storage

import (
	"context"
	"time"
)

// FileStorage keeps identification documents. Files are addressed by the
// object key returned from UploadFile.
type FileStorage interface {
	UploadFile(ctx context.Context, data []byte, filename string) (string, error)

	DeleteFile(ctx context.Context, key string) error

	GetFile(ctx context.Context, key string) ([]byte, error)

	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
