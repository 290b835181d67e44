package storage

import (
	"context"
	"fmt"

	"salesdash/internal/config"
	"salesdash/internal/logger"
)

// DeploymentMode selects where snapshots are archived
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewStorageClient creates a storage client based on the configured storage mode
func NewStorageClient(ctx context.Context, cfg *config.Config, log *logger.Logger) (StorageClient, error) {
	switch DeploymentMode(cfg.StorageMode) {
	case DeploymentLocal, "":
		dir := cfg.LocalSnapshotsDir
		if dir == "" {
			dir = "snapshots"
		}
		localClient, err := NewLocalStorageClient(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.StorageMode)
	}
}
