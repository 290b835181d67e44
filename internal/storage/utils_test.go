package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSnapshotFolderPath(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		timestamp time.Time
		expected  string
	}{
		{
			name:      "dashboard",
			page:      "/dashboard",
			timestamp: time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC),
			expected:  "snapshots/2025/09/17/dashboard-2025-09-17-14-30-45",
		},
		{
			name:      "single digit month and day",
			page:      "/clientes",
			timestamp: time.Date(2025, 3, 5, 8, 7, 6, 0, time.UTC),
			expected:  "snapshots/2025/03/05/clientes-2025-03-05-08-07-06",
		},
		{
			name:      "root route",
			page:      "/",
			timestamp: time.Date(2024, 2, 29, 12, 15, 30, 0, time.UTC),
			expected:  "snapshots/2024/02/29/page-2024-02-29-12-15-30",
		},
		{
			name:      "traversal is cleaned",
			page:      "/../../etc/regiones",
			timestamp: time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			expected:  "snapshots/2024/12/31/etc-regiones-2024-12-31-23-59-59",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenerateSnapshotFolderPath(tt.page, tt.timestamp))
		})
	}
}

func TestGetContentType(t *testing.T) {
	for filename, want := range map[string]string{
		"manifest.json":             "application/json",
		"sales-heatmap.svg":         "image/svg+xml",
		"sales-heatmap.png":         "image/png",
		"salesTrendCanvas.html":     "text/html",
		"notes.md":                  "text/markdown",
		"readme.txt":                "text/plain",
		"archive.tar.gz":            "application/octet-stream",
	} {
		assert.Equal(t, want, GetContentType(filename), filename)
	}
}
