package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/models"
	"salesdash/internal/surface"
)

var (
	barDescriptor     = Descriptor{Kind: BarVertical, XKey: "region", YKey: "total_sales", Title: "Ventas por Región"}
	bubbleDescriptor  = Descriptor{Kind: Bubble, XKey: "category", YKey: "sub_category", ValueKey: "total_sales", Title: "Ventas por Categoría y Subcategoría"}
	heatmapDescriptor = Descriptor{Kind: Heatmap, XKey: "day", YKey: "month", ValueKey: "value", Title: "Ventas Mensuales (Heatmap)", Margin: Margin{Top: 40, Right: 30, Bottom: 60, Left: 60}}
)

func TestRenderEmptyDatasetPaintsPlaceholder(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	for _, desc := range []Descriptor{
		barDescriptor,
		{Kind: BarHorizontal, XKey: "product_name", YKey: "total_sales"},
		bubbleDescriptor,
		heatmapDescriptor,
	} {
		t.Run(desc.Kind.String(), func(t *testing.T) {
			s, _ := doc.Surface("sales-by-region-chart")
			s.Root().Append("g").Append("rect").Class("bar")

			for _, ds := range []models.Dataset{nil, {}} {
				plot, err := r.Render(ds, "sales-by-region-chart", desc)
				require.NoError(t, err)
				assert.Nil(t, plot)

				children := s.Root().Children()
				require.Len(t, children, 1)
				assert.Equal(t, NoDataMessage, children[0].TextContent())
				assert.Equal(t, "#2c3e50", children[0].GetAttr("fill"))
				assert.Empty(t, s.Root().SelectClass("bar"))
			}
		})
	}
}

func TestBarVerticalScales(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	ds := records(
		map[string]interface{}{"region": "A", "total_sales": 10.0},
		map[string]interface{}{"region": "B", "total_sales": 20.0},
	)
	plot, err := r.Render(ds, "sales-by-region-chart", barDescriptor)
	require.NoError(t, err)
	require.NotNil(t, plot)

	lo, hi := plot.YLinear.Domain()
	assert.Equal(t, 0.0, lo)
	assert.InDelta(t, 22.0, hi, 1e-9)
	assert.Equal(t, 510.0, plot.Width)
	assert.Equal(t, 280.0, plot.Height)

	a, ok := plot.XBand.Scale("A")
	require.True(t, ok)
	assert.Equal(t, 25.0, a)
	assert.Equal(t, 218.0, plot.XBand.Bandwidth())

	require.Len(t, plot.Marks, 2)
	for _, bar := range plot.Marks {
		assert.Equal(t, "#3498db", bar.GetAttr("fill"))
	}
	// The tallest bar stops below the top of the plot area.
	assert.Greater(t, plot.Marks[1].GetAttrF("y"), 0.0)

	s, _ := doc.Surface("sales-by-region-chart")
	xAxis := s.Root().SelectClass("axis--x")
	require.Len(t, xAxis, 1)
	labels := xAxis[0].SelectTag("text")
	require.Len(t, labels, 2)
	assert.Equal(t, "rotate(-45)", labels[0].GetAttr("transform"))
	assert.Equal(t, "#555555", labels[0].GetStyle("fill"))

	titles := s.Root().SelectClass("chart-title")
	require.Len(t, titles, 1)
	assert.Equal(t, "Ventas por Región", titles[0].TextContent())
	assert.Equal(t, "#2c3e50", titles[0].GetStyle("fill"))
}

func TestRenderClearsPriorContent(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)
	ds := records(map[string]interface{}{"region": "Oeste", "total_sales": 725457.82})

	_, err := r.Render(ds, "sales-by-region-chart", barDescriptor)
	require.NoError(t, err)
	_, err = r.Render(ds, "sales-by-region-chart", barDescriptor)
	require.NoError(t, err)

	s, _ := doc.Surface("sales-by-region-chart")
	assert.Len(t, s.Root().SelectClass("bar"), 1)
	assert.Len(t, s.Root().SelectClass("chart-title"), 1)
}

func TestBarHorizontalGrowsFromZero(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	ds := records(
		map[string]interface{}{"product_name": "Canon imageCLASS", "total_sales": 61599.82},
		map[string]interface{}{"product_name": "Fellowes PB500", "total_sales": 27453.38},
	)
	plot, err := r.Render(ds, "sales-by-region-chart", Descriptor{Kind: BarHorizontal, XKey: "product_name", YKey: "total_sales"})
	require.NoError(t, err)

	_, hi := plot.XLinear.Domain()
	assert.InDelta(t, 61599.82*1.1, hi, 1e-6)
	require.Len(t, plot.Marks, 2)
	for _, bar := range plot.Marks {
		assert.Equal(t, 0.0, bar.GetAttrF("x"))
	}
	assert.Greater(t, plot.Marks[0].GetAttrF("width"), plot.Marks[1].GetAttrF("width"))
	// First category sits at the bottom of the band axis.
	assert.Greater(t, plot.Marks[0].GetAttrF("y"), plot.Marks[1].GetAttrF("y"))
}

func TestBubbleGroupsByCategoryAndSubCategory(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	ds := records(
		map[string]interface{}{"category": "X", "sub_category": "a", "total_sales": 5.0},
		map[string]interface{}{"category": "X", "sub_category": "a", "total_sales": 7.0},
	)
	plot, err := r.Render(ds, "category-subcategory-chart", bubbleDescriptor)
	require.NoError(t, err)

	require.Len(t, plot.Bubbles, 1)
	assert.Equal(t, BubbleDatum{Category: "X", SubCategory: "a", Total: 12}, plot.Bubbles[0])
	require.Len(t, plot.Marks, 1)
	assert.Equal(t, 30.0, plot.Marks[0].GetAttrF("r"))
	assert.Equal(t, Category10[0], plot.Marks[0].GetAttr("fill"))

	s, _ := doc.Surface("category-subcategory-chart")
	require.NoError(t, s.Hover(plot.Marks[0], 200, 150))
	tips := s.Tooltips()
	require.Len(t, tips, 1)
	var lines []string
	for _, text := range tips[0].SelectTag("text") {
		lines = append(lines, text.TextContent())
	}
	assert.Equal(t, []string{"Categoría: X", "Subcategoría: a", "Ventas: $12.00"}, lines)
	assert.Equal(t, "black", plot.Marks[0].GetStyle("stroke"))

	s.Leave(plot.Marks[0])
	assert.Empty(t, s.Tooltips())
	assert.Equal(t, "none", plot.Marks[0].GetStyle("stroke"))
}

func TestGroupBubblesKeepsFirstSeenOrder(t *testing.T) {
	ds := records(
		map[string]interface{}{"category": "Tecnología", "sub_category": "Phones", "total_sales": 1.0},
		map[string]interface{}{"category": "Muebles", "sub_category": "Chairs", "total_sales": 2.0},
		map[string]interface{}{"category": "Tecnología", "sub_category": "Copiers", "total_sales": 3.0},
		map[string]interface{}{"category": "Tecnología", "sub_category": "Phones", "total_sales": 4.0},
	)
	got := GroupBubbles(ds, "category", "sub_category", "total_sales")
	assert.Equal(t, []BubbleDatum{
		{Category: "Tecnología", SubCategory: "Phones", Total: 5},
		{Category: "Tecnología", SubCategory: "Copiers", Total: 3},
		{Category: "Muebles", SubCategory: "Chairs", Total: 2},
	}, got)
}

func TestHeatmapKeysByMonthAndDay(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	ds := records(
		map[string]interface{}{"month": "Ene", "day": 3.0, "value": 100.0},
		map[string]interface{}{"month": "Dic", "day": 31.0, "value": 50.0},
		map[string]interface{}{"month": "Ene", "day": 3.0, "value": 250.0},
		map[string]interface{}{"month": "Ene", "day": 32.0, "value": 1.0},
	)
	plot, err := r.Render(ds, "sales-heatmap", heatmapDescriptor)
	require.NoError(t, err)

	require.Len(t, plot.Marks, 2)
	s, _ := doc.Surface("sales-heatmap")
	assert.Len(t, s.Root().SelectClass("cell"), 2)
	assert.Equal(t, 250.0, plot.Marks[0].GetAttrF("data-value"))
	assert.Equal(t, "#e0e0e0", plot.Marks[0].GetStyle("stroke"))

	ene, _ := plot.YBand.Scale("Ene")
	dic, _ := plot.YBand.Scale("Dic")
	assert.Greater(t, ene, dic, "January sits below December")
	assert.Equal(t, 300.0, plot.Height)

	require.NoError(t, s.Hover(plot.Marks[0], 10, 10))
	texts := s.Tooltips()[0].SelectTag("text")
	assert.Equal(t, "Fecha: 3 Ene", texts[0].TextContent())
	assert.Equal(t, "Ventas: $250.00", texts[1].TextContent())
	s.Leave(plot.Marks[0])
	assert.Equal(t, "#e0e0e0", plot.Marks[0].GetStyle("stroke"))
	assert.Equal(t, "1", plot.Marks[0].GetStyle("stroke-width"))
}

func TestThemeColorsAreReadOnEveryRender(t *testing.T) {
	store, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)
	ds := records(map[string]interface{}{"region": "Sur", "total_sales": 391721.9})

	plot, err := r.Render(ds, "sales-by-region-chart", barDescriptor)
	require.NoError(t, err)
	lightFill := plot.Marks[0].GetAttr("fill")

	store.Toggle()
	plot, err = r.Render(ds, "sales-by-region-chart", barDescriptor)
	require.NoError(t, err)
	darkFill := plot.Marks[0].GetAttr("fill")

	assert.NotEqual(t, lightFill, darkFill)
	assert.Equal(t, "#1abc9c", darkFill)

	s, _ := doc.Surface("sales-by-region-chart")
	for _, axis := range s.Root().SelectClass("axis") {
		for _, line := range axis.SelectTag("line") {
			assert.Equal(t, "#bdc3c7", line.GetStyle("stroke"))
		}
	}
}

func TestRenderMissingSurface(t *testing.T) {
	_, resolver := newTestTheme(t)
	r := NewLowLevelRenderer(newTestDocument(), resolver, nil)

	plot, err := r.Render(records(map[string]interface{}{"region": "Este", "total_sales": 1.0}), "nope", barDescriptor)
	assert.NoError(t, err)
	assert.Nil(t, plot)
}

func TestRenderRejectsCanvasSurface(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	plot, err := r.Render(records(map[string]interface{}{"region": "Este", "total_sales": 1.0}), "salesTrendCanvas", barDescriptor)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Nil(t, plot)

	s, _ := doc.Surface("salesTrendCanvas")
	assert.Empty(t, s.Root().Children())
}

func TestRenderRejectsInvalidDescriptor(t *testing.T) {
	_, resolver := newTestTheme(t)
	r := NewLowLevelRenderer(newTestDocument(), resolver, nil)

	for _, desc := range []Descriptor{
		{Kind: Line, XKey: "month", YKey: "total_sales"},
		{Kind: BarVertical, XKey: "region"},
		{Kind: Bubble, XKey: "category", YKey: "sub_category"},
		{Kind: BarVertical, XKey: "region", YKey: "total_sales", Style: Style{BarPadding: 1.5}},
	} {
		_, err := r.Render(nil, "sales-by-region-chart", desc)
		assert.ErrorIs(t, err, ErrInvalidDescriptor, "descriptor %+v", desc)
	}
}

func TestRenderedSurfaceSerialises(t *testing.T) {
	_, resolver := newTestTheme(t)
	doc := newTestDocument()
	r := NewLowLevelRenderer(doc, resolver, nil)

	_, err := r.Render(records(
		map[string]interface{}{"category": "Muebles", "sub_category": "Sillas", "total_sales": 328449.1},
	), "category-subcategory-chart", bubbleDescriptor)
	require.NoError(t, err)

	s, ok := doc.Surface("category-subcategory-chart")
	require.True(t, ok)
	svg := s.SVG()
	assert.Contains(t, svg, `class="bubble"`)
	assert.Contains(t, svg, "<title>Categoría: Muebles")
	assert.Equal(t, surface.Vector, s.Kind())
}
