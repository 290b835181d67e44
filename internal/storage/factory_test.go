package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/config"
)

func TestNewStorageClientLocal(t *testing.T) {
	cfg := &config.Config{StorageMode: "local", LocalSnapshotsDir: filepath.Join(t.TempDir(), "snaps")}

	client, err := NewStorageClient(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer client.Close()

	_, ok := client.(*LocalStorageClient)
	assert.True(t, ok, "expected LocalStorageClient, got %T", client)
}

func TestNewStorageClientUnsupported(t *testing.T) {
	_, err := NewStorageClient(context.Background(), &config.Config{StorageMode: "ftp"}, nil)
	assert.Error(t, err)
}
