package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// ManifestName is the file every snapshot folder ends with.
const ManifestName = "manifest.json"

// GenerateSnapshotFolderPath generates a consistent folder path for snapshots
// Format: snapshots/YYYY/MM/DD/<page>-YYYY-MM-DD-HH-MM-SS
func GenerateSnapshotFolderPath(page string, timestamp time.Time) string {
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%s-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		pageSlug(page),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

func pageSlug(page string) string {
	slug := strings.Trim(path.Clean("/"+page), "/")
	slug = strings.ReplaceAll(slug, "/", "-")
	if slug == "" {
		return "page"
	}
	return slug
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	default:
		return "application/octet-stream"
	}
}

// newestFirst sorts paths alphabetically, reverses them and applies limit.
// Folder names carry the timestamp, so alphabetical order is chronological.
func newestFirst(paths []string, limit int) []string {
	sort.Strings(paths)
	for i, j := 0, len(paths)-1; i < j; i, j = i+1, j-1 {
		paths[i], paths[j] = paths[j], paths[i]
	}
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}
