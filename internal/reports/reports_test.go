package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/charts"
	"salesdash/internal/dispatch"
	"salesdash/internal/models"
	"salesdash/internal/storage"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

func dashboard(t *testing.T) (*dispatch.Page, []*dispatch.Page, *surface.Document) {
	t.Helper()
	reg := dispatch.DefaultRegistry(nil)
	page, ok := reg.Lookup("/dashboard")
	require.True(t, ok)

	doc := surface.NewDocument(page.Route, page.Surfaces...)
	store, err := theme.NewStore(theme.Light)
	require.NoError(t, err)
	low := charts.NewLowLevelRenderer(doc, theme.NewResolver(store), nil)
	_, err = low.Render(models.Dataset{
		{"region": "West", "total_sales": 725457.82},
		{"region": "East", "total_sales": 678781.24},
	}, "sales-by-region-chart", page.Entries[0].Descriptor)
	require.NoError(t, err)
	return page, reg.Pages(), doc
}

func TestBuildPage(t *testing.T) {
	builder, err := NewHTMLBuilder()
	require.NoError(t, err)
	page, pages, doc := dashboard(t)

	out, err := builder.BuildPage(page, pages, doc, theme.Light)
	require.NoError(t, err)

	assert.Contains(t, out, `data-theme="light"`)
	assert.Contains(t, out, "<h2>Dashboard General</h2>")
	assert.Contains(t, out, "<strong>región</strong>")
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `src="/surfaces/salesTrendCanvas"`)
	assert.Contains(t, out, `<li class="active"><a href="/dashboard">Dashboard</a></li>`)
	assert.Contains(t, out, ">Clientes</a>")
	assert.Contains(t, out, `action="/theme/toggle"`)
	assert.Contains(t, out, "Tema oscuro")
}

func TestBuildCanvasHTML(t *testing.T) {
	builder, err := NewHTMLBuilder()
	require.NoError(t, err)
	_, _, doc := dashboard(t)

	require.True(t, doc.ResetCanvas("salesTrendCanvas", charts.NoDataMessage))
	s, _ := doc.Surface("salesTrendCanvas")
	out, err := builder.BuildCanvasHTML(s, theme.Dark)
	require.NoError(t, err)
	assert.Contains(t, out, charts.NoDataMessage)
	assert.Contains(t, out, `<canvas id="salesTrendCanvas" width="400" height="200">`)

	s.SetMarkup(`<div id="salesTrendCanvas"></div>`)
	out, err = builder.BuildCanvasHTML(s, theme.Dark)
	require.NoError(t, err)
	assert.Contains(t, out, `<div id="salesTrendCanvas"></div>`)
	assert.NotContains(t, out, "<canvas")

	vector, _ := doc.Surface("sales-by-region-chart")
	_, err = builder.BuildCanvasHTML(vector, theme.Light)
	assert.Error(t, err)
}

func TestSnapshotStoreAndList(t *testing.T) {
	ctx := context.Background()
	builder, err := NewHTMLBuilder()
	require.NoError(t, err)
	page, pages, doc := dashboard(t)

	snap, err := builder.CollectSnapshot(page, pages, doc, theme.Light)
	require.NoError(t, err)
	// index + 3 vector surfaces (svg, png) + 1 canvas
	require.Len(t, snap.Files, 8)
	assert.Equal(t, "index.html", snap.Files[0].Name)

	client, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)
	orch := NewStorageOrchestrator(client, nil)

	ts := time.Date(2025, 9, 17, 14, 30, 45, 0, time.UTC)
	manifest, err := orch.StoreSnapshot(ctx, snap, ts)
	require.NoError(t, err)
	assert.Len(t, manifest.Files, 8)
	assert.Contains(t, manifest.Files, "snapshots/2025/09/17/dashboard-2025-09-17-14-30-45/sales-by-region-chart.png")

	png, err := client.GetFile(ctx, "snapshots/2025/09/17/dashboard-2025-09-17-14-30-45/sales-by-region-chart.png")
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	listed, err := orch.ListSnapshots(ctx, 5)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, manifest.ID, listed[0].ID)
	assert.Equal(t, "/dashboard", listed[0].Route)
}

func TestToTitleCase(t *testing.T) {
	assert.Equal(t, "Clientes", ToTitleCase("clientes"))
	assert.Equal(t, "Análisis Temporal", ToTitleCase("análisis   temporal"))
	assert.Equal(t, "", ToTitleCase(""))
}
