package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned download URLs.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations. It backs
// protocol exports: the server writes the serialized document and hands out
// a temporary download link.
type FileStorage interface {
	// PutObject uploads an object with the given content type.
	PutObject(ctx context.Context, objectKey string, data []byte, contentType string) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
