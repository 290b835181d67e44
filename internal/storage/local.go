package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
	}, nil
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalStorageClient) Close() error {
	return nil
}

// StoreFile writes a file into the page's snapshot folder and returns its
// path relative to the base directory.
func (l *LocalStorageClient) StoreFile(ctx context.Context, fileData []byte, page, filename string, timestamp time.Time) (string, error) {
	relPath := GenerateSnapshotFolderPath(page, timestamp) + "/" + filename
	filePath := filepath.Join(l.baseDir, filepath.FromSlash(relPath))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return relPath, nil
}

// GetFile retrieves a file stored under the base directory
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(filePath)))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// ListSnapshots lists snapshot manifests from local storage, newest first
func (l *LocalStorageClient) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	root := filepath.Join(l.baseDir, "snapshots")

	var manifests []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}
		if !info.IsDir() && info.Name() == ManifestName {
			relPath, _ := filepath.Rel(l.baseDir, path)
			manifests = append(manifests, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshots directory: %w", err)
	}

	return newestFirst(manifests, limit), nil
}
