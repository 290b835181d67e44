package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/charts"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

func TestDefaultRegistryRoutes(t *testing.T) {
	r := DefaultRegistry(nil)

	var routes []string
	for _, p := range r.Pages() {
		routes = append(routes, p.Route)
	}
	assert.Equal(t, []string{"/dashboard", "/clientes", "/productos", "/regiones", "/tiempo"}, routes)

	dash, ok := r.Lookup("/dashboard")
	require.True(t, ok)
	require.Len(t, dash.Entries, 4)

	want := []struct {
		source  string
		kind    charts.Kind
		surface string
	}{
		{"/api/sales_by_region", charts.BarVertical, "sales-by-region-chart"},
		{"/api/sales_trend", charts.Line, "salesTrendCanvas"},
		{"/api/top_products", charts.BarHorizontal, "top-products-chart"},
		{"/api/category_subcategory_sales", charts.Bubble, "category-subcategory-chart"},
	}
	for i, w := range want {
		assert.Equal(t, w.source, dash.Entries[i].Source)
		assert.Equal(t, w.kind, dash.Entries[i].Kind)
		assert.Equal(t, w.surface, dash.Entries[i].SurfaceID)
	}

	_, ok = r.Lookup("/login")
	assert.False(t, ok)
}

func TestTimePageHeatmapMargin(t *testing.T) {
	page, ok := DefaultRegistry(nil).Lookup("/tiempo")
	require.True(t, ok)

	var heat *Entry
	for i := range page.Entries {
		if page.Entries[i].Kind == charts.Heatmap {
			heat = &page.Entries[i]
		}
	}
	require.NotNil(t, heat)
	assert.Equal(t, 60.0, heat.Descriptor.Margin.Bottom)
	assert.Equal(t, "sales-heatmap", heat.SurfaceID)
}

func TestRegisterRejectsInvalidPages(t *testing.T) {
	vectorSpec := surface.Spec{ID: "v", Kind: surface.Vector}
	canvasSpec := surface.Spec{ID: "c", Kind: surface.Canvas}
	bar := charts.Descriptor{Kind: charts.BarVertical, XKey: "region", YKey: "total_sales"}
	build := func(models.Dataset, theme.ColorSet) *charts.Config { return &charts.Config{} }

	tests := []struct {
		name string
		page *Page
	}{
		{"relative route", &Page{Route: "dashboard"}},
		{"surface not laid out", &Page{Route: "/a", Entries: []Entry{{SurfaceID: "missing", Kind: charts.BarVertical, Descriptor: bar}}}},
		{"low-level on canvas", &Page{Route: "/a", Surfaces: []surface.Spec{canvasSpec}, Entries: []Entry{{SurfaceID: "c", Kind: charts.BarVertical, Descriptor: bar}}}},
		{"high-level on vector", &Page{Route: "/a", Surfaces: []surface.Spec{vectorSpec}, Entries: []Entry{{SurfaceID: "v", Kind: charts.Line, Build: build}}}},
		{"descriptor kind mismatch", &Page{Route: "/a", Surfaces: []surface.Spec{vectorSpec}, Entries: []Entry{{SurfaceID: "v", Kind: charts.Bubble, Descriptor: bar}}}},
		{"missing builder", &Page{Route: "/a", Surfaces: []surface.Spec{canvasSpec}, Entries: []Entry{{SurfaceID: "c", Kind: charts.Line}}}},
		{"invalid descriptor", &Page{Route: "/a", Surfaces: []surface.Spec{vectorSpec}, Entries: []Entry{{SurfaceID: "v", Kind: charts.BarVertical, Descriptor: charts.Descriptor{Kind: charts.BarVertical}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, NewRegistry().Register(tt.page))
		})
	}
}

func TestRegisterRejectsDuplicateRoute(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&Page{Route: "/a"}))
	assert.ErrorIs(t, r.Register(&Page{Route: "/a"}), ErrDuplicateRoute)
}

func TestConfigBuildersProduceValidConfigs(t *testing.T) {
	store, err := theme.NewStore(theme.Light)
	require.NoError(t, err)
	colors := theme.NewResolver(store).Colors()

	sample := models.Dataset{
		{"month": "2017-01", "year_month": "2017-01", "total_sales": 10.0, "segment": "Consumer", "order_count": 5.0,
			"customer_name": "Sean Miller", "city": "Seattle", "state": "Washington", "sales": 12.0, "profit": 3.0,
			"category": "Technology", "day": "Lunes"},
	}
	for _, page := range DefaultRegistry(nil).Pages() {
		for _, e := range page.Entries {
			if e.Backend() != charts.HighLevel {
				continue
			}
			cfg := e.Build(sample, colors)
			assert.NoError(t, cfg.Validate(e.Kind), "%s %s", page.Route, e.SurfaceID)
		}
	}
}
