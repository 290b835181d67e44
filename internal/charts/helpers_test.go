package charts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

func newTestTheme(t *testing.T) (*theme.Store, *theme.Resolver) {
	t.Helper()
	store, err := theme.NewStore(theme.Light)
	require.NoError(t, err)
	return store, theme.NewResolver(store)
}

func newTestDocument() *surface.Document {
	return surface.NewDocument("/dashboard",
		surface.Spec{ID: "sales-by-region-chart", Kind: surface.Vector, Width: 600, Height: 400},
		surface.Spec{ID: "category-subcategory-chart", Kind: surface.Vector, Width: 600, Height: 400},
		surface.Spec{ID: "sales-heatmap", Kind: surface.Vector, Width: 900, Height: 400},
		surface.Spec{ID: "salesTrendCanvas", Kind: surface.Canvas, Width: 600, Height: 300},
	)
}

func records(rows ...map[string]interface{}) models.Dataset {
	ds := make(models.Dataset, len(rows))
	for i, r := range rows {
		ds[i] = models.Record(r)
	}
	return ds
}
