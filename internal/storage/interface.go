package storage

import (
	"context"
	"time"
)

// StorageClient defines the operations the snapshot archive needs
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file in the snapshot folder of a page at timestamp
	StoreFile(ctx context.Context, fileData []byte, page, filename string, timestamp time.Time) (string, error)

	// GetFile retrieves a file by the path StoreFile returned
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListSnapshots lists snapshot manifests, newest first
	ListSnapshots(ctx context.Context, limit int) ([]string, error)
}
