package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageClientCreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	client, err := NewLocalStorageClient(dir)
	require.NoError(t, err)
	defer client.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	ts := time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC)
	path, err := client.StoreFile(ctx, []byte("<svg/>"), "/dashboard", "sales-by-region-chart.svg", ts)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/2025/09/17/dashboard-2025-09-17-14-30-45/sales-by-region-chart.svg", path)

	data, err := client.GetFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	_, err = client.GetFile(ctx, "snapshots/missing.svg")
	assert.Error(t, err)
}

func TestLocalListSnapshotsNewestFirst(t *testing.T) {
	ctx := context.Background()
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	older := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC)
	for _, ts := range []time.Time{older, newer} {
		_, err := client.StoreFile(ctx, []byte(`{}`), "/tiempo", ManifestName, ts)
		require.NoError(t, err)
		_, err = client.StoreFile(ctx, []byte(`<svg/>`), "/tiempo", "sales-heatmap.svg", ts)
		require.NoError(t, err)
	}

	all, err := client.ListSnapshots(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Contains(t, all[0], "tiempo-2025-03-05-08-07-06")

	latest, err := client.ListSnapshots(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, all[:1], latest)
}

func TestLocalListSnapshotsEmpty(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	got, err := client.ListSnapshots(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
