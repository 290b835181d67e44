package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wcharczuk/go-chart/v2"

	"salesdash/internal/dispatch"
	"salesdash/internal/logger"
	"salesdash/internal/storage"
	"salesdash/internal/surface"
)

// SnapshotFile is one serialised surface or page.
type SnapshotFile struct {
	Name string
	Data []byte
}

// Snapshot is every file captured from one page at one moment.
type Snapshot struct {
	Route string
	Theme string
	Files []SnapshotFile
}

// Manifest describes a stored snapshot.
type Manifest struct {
	ID        string    `json:"id"`
	Route     string    `json:"route"`
	Theme     string    `json:"theme"`
	CreatedAt time.Time `json:"created_at"`
	Files     []string  `json:"files"`
}

// ExportBackground is the card color raster exports are painted on.
func ExportBackground(theme string) string {
	if theme == "dark" {
		return "#2c3e50"
	}
	return "#ffffff"
}

// CollectSnapshot serialises the page shell and every surface of doc:
// vector surfaces as SVG and PNG, canvas surfaces as standalone HTML.
// Call it from the render loop.
func (h *HTMLBuilder) CollectSnapshot(page *dispatch.Page, pages []*dispatch.Page, doc *surface.Document, theme string) (*Snapshot, error) {
	index, err := h.BuildPage(page, pages, doc, theme)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Route: page.Route,
		Theme: theme,
		Files: []SnapshotFile{{Name: "index.html", Data: []byte(index)}},
	}

	for _, s := range doc.Surfaces() {
		switch s.Kind() {
		case surface.Vector:
			var svg, png bytes.Buffer
			if err := s.WriteSVG(&svg); err != nil {
				return nil, fmt.Errorf("failed to serialise %s: %w", s.ID(), err)
			}
			if err := s.Export(&png, chart.PNG, ExportBackground(theme)); err != nil {
				return nil, fmt.Errorf("failed to export %s: %w", s.ID(), err)
			}
			snap.Files = append(snap.Files,
				SnapshotFile{Name: s.ID() + ".svg", Data: svg.Bytes()},
				SnapshotFile{Name: s.ID() + ".png", Data: png.Bytes()},
			)
		case surface.Canvas:
			frame, err := h.BuildCanvasHTML(s, theme)
			if err != nil {
				return nil, err
			}
			snap.Files = append(snap.Files, SnapshotFile{Name: s.ID() + ".html", Data: []byte(frame)})
		}
	}
	return snap, nil
}

// StorageOrchestrator writes snapshots to the configured storage backend.
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a new storage orchestrator
func NewStorageOrchestrator(client storage.StorageClient, log *logger.Logger) *StorageOrchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &StorageOrchestrator{storage: client, log: log.WithComponent("snapshots")}
}

// StoreSnapshot uploads every file of snap into one timestamped folder,
// then the manifest listing them.
func (so *StorageOrchestrator) StoreSnapshot(ctx context.Context, snap *Snapshot, timestamp time.Time) (*Manifest, error) {
	manifest := &Manifest{
		ID:        uuid.NewString(),
		Route:     snap.Route,
		Theme:     snap.Theme,
		CreatedAt: timestamp.UTC(),
	}

	for _, f := range snap.Files {
		path, err := so.storage.StoreFile(ctx, f.Data, snap.Route, f.Name, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", f.Name, err)
		}
		manifest.Files = append(manifest.Files, path)
	}

	body, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if _, err := so.storage.StoreFile(ctx, body, snap.Route, storage.ManifestName, timestamp); err != nil {
		return nil, fmt.Errorf("failed to store manifest: %w", err)
	}

	so.log.Info("Snapshot stored", map[string]interface{}{
		"id":    manifest.ID,
		"route": manifest.Route,
		"files": len(manifest.Files),
	})
	return manifest, nil
}

// ListSnapshots returns the newest stored manifests.
func (so *StorageOrchestrator) ListSnapshots(ctx context.Context, limit int) ([]*Manifest, error) {
	paths, err := so.storage.ListSnapshots(ctx, limit)
	if err != nil {
		return nil, err
	}
	manifests := make([]*Manifest, 0, len(paths))
	for _, p := range paths {
		body, err := so.storage.GetFile(ctx, p)
		if err != nil {
			so.log.Warn("Skipping unreadable manifest", map[string]interface{}{"path": p, "error": err.Error()})
			continue
		}
		var m Manifest
		if err := json.Unmarshal(body, &m); err != nil {
			so.log.Warn("Skipping malformed manifest", map[string]interface{}{"path": p, "error": err.Error()})
			continue
		}
		manifests = append(manifests, &m)
	}
	return manifests, nil
}
