package charts

import (
	"fmt"
	"strconv"

	"salesdash/internal/logger"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

// NoDataMessage is painted on a surface when a dataset is empty.
const NoDataMessage = "No hay datos disponibles"

// Months labels the heatmap's vertical axis, January first.
var Months = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// SurfaceLookup finds drawing surfaces by id.
type SurfaceLookup interface {
	Surface(id string) (*surface.Surface, bool)
}

// LowLevelRenderer draws bar, bubble and heatmap charts straight onto vector
// surfaces, building every scale and axis itself.
type LowLevelRenderer struct {
	surfaces SurfaceLookup
	theme    *theme.Resolver
	log      *logger.Logger
}

// NewLowLevelRenderer creates a renderer bound to a page's surfaces.
func NewLowLevelRenderer(surfaces SurfaceLookup, resolver *theme.Resolver, log *logger.Logger) *LowLevelRenderer {
	if log == nil {
		log = logger.NewNop()
	}
	return &LowLevelRenderer{surfaces: surfaces, theme: resolver, log: log.WithComponent("lowlevel-renderer")}
}

// BubbleDatum is one grouped (category, sub-category) total.
type BubbleDatum struct {
	Category    string
	SubCategory string
	Total       float64
}

// Plot exposes the scales a render computed.
type Plot struct {
	Kind   Kind
	Width  float64
	Height float64

	XBand   *BandScale
	YBand   *BandScale
	XLinear *LinearScale
	YLinear *LinearScale
	Radius  *SqrtScale
	Color   *OrdinalScale
	Fill    *SequentialScale

	Bubbles []BubbleDatum
	Marks   []*surface.Node
}

// Render draws ds onto the surface named surfaceID. Empty data paints the
// placeholder; a missing surface is logged and skipped. Errors are an
// invalid descriptor or a target that is not a vector surface.
func (r *LowLevelRenderer) Render(ds models.Dataset, surfaceID string, desc Descriptor) (*Plot, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	colors := r.theme.Colors()

	s, ok := r.surfaces.Surface(surfaceID)
	if !ok {
		r.log.Warn("Surface not found, nothing drawn", map[string]interface{}{
			"surface": surfaceID,
			"kind":    desc.Kind.String(),
		})
		return nil, nil
	}
	if s.Kind() != surface.Vector {
		return nil, fmt.Errorf("%w: surface %s is not a vector surface", ErrInvalidDescriptor, surfaceID)
	}

	if ds.Empty() {
		r.log.Warn("No data to draw", map[string]interface{}{"surface": surfaceID})
		paintPlaceholder(s, colors.Text)
		return nil, nil
	}

	s.Clear()
	m := desc.margin()
	plot := &Plot{
		Kind:   desc.Kind,
		Width:  float64(s.Width()) - m.Left - m.Right,
		Height: float64(s.Height()) - m.Top - m.Bottom,
	}

	g := s.Root().Append("g").Attr("transform", fmt.Sprintf("translate(%s,%s)", fmtNum(m.Left), fmtNum(m.Top)))
	g.Append("text").Class("chart-title").
		AttrF("x", plot.Width/2).
		AttrF("y", -m.Top/2).
		Attr("text-anchor", "middle").
		Style("font-size", "16px").
		Style("font-weight", "bold").
		Style("fill", colors.Text).
		Text(desc.Title)

	switch desc.Kind {
	case BarVertical:
		r.renderBarVertical(g, ds, desc, colors, plot)
	case BarHorizontal:
		r.renderBarHorizontal(g, ds, desc, colors, plot)
	case Bubble:
		r.renderBubble(g, ds, desc, colors, plot)
	case Heatmap:
		r.renderHeatmap(g, ds, desc, colors, plot)
	case Line, Doughnut, Scatter, Bar:
		return nil, fmt.Errorf("%w: %s", ErrInvalidDescriptor, desc.Kind)
	}

	r.log.Debug("Chart drawn", map[string]interface{}{
		"surface": surfaceID,
		"kind":    desc.Kind.String(),
		"records": len(ds),
		"theme":   colors.Theme,
	})
	return plot, nil
}

func paintPlaceholder(s *surface.Surface, color string) {
	s.Clear()
	s.Root().Append("text").Class("placeholder").
		AttrF("x", float64(s.Width())/2).
		AttrF("y", float64(s.Height())/2).
		Attr("dominant-baseline", "middle").
		Attr("text-anchor", "middle").
		Attr("fill", color).
		Text(NoDataMessage)
}

func (r *LowLevelRenderer) renderBarVertical(g *surface.Node, ds models.Dataset, desc Descriptor, colors theme.ColorSet, plot *Plot) {
	style := desc.style()
	x := NewBandScale(ds.Distinct(desc.XKey), 0, plot.Width, style.BarPadding, style.BarPadding, true)
	y := NewLinearScale(0, ds.Max(desc.YKey)*1.1, plot.Height, 0, true)
	plot.XBand, plot.YLinear = x, y

	xAxis := drawAxis(g, axisBottom, "axis--x", plot.Width, bandTicks(x))
	xAxis.Attr("transform", fmt.Sprintf("translate(0,%s)", fmtNum(plot.Height)))
	rotation := style.TickRotation
	if rotation == 0 {
		rotation = -45
	}
	rotateLabels(xAxis, rotation, "-.8em", ".15em")
	applyAxisStyles(xAxis, colors.ChartText)
	applyAxisStyles(drawAxis(g, axisLeft, "axis--y", plot.Height, linearTicks(y, 5)), colors.ChartText)

	for _, rec := range ds {
		bx, _ := x.Scale(rec.String(desc.XKey))
		by := y.Scale(rec.Number(desc.YKey))
		bar := g.Append("rect").Class("bar").
			AttrF("x", bx).
			AttrF("y", by).
			AttrF("width", x.Bandwidth()).
			AttrF("height", plot.Height-by).
			Attr("fill", colors.Accent)
		plot.Marks = append(plot.Marks, bar)
	}
}

func (r *LowLevelRenderer) renderBarHorizontal(g *surface.Node, ds models.Dataset, desc Descriptor, colors theme.ColorSet, plot *Plot) {
	style := desc.style()
	x := NewLinearScale(0, ds.Max(desc.YKey)*1.1, 0, plot.Width, false)
	y := NewBandScale(ds.Distinct(desc.XKey), plot.Height, 0, style.BarPadding, style.BarPadding, true)
	plot.XLinear, plot.YBand = x, y

	xAxis := drawAxis(g, axisBottom, "axis--x", plot.Width, linearTicks(x, 5))
	xAxis.Attr("transform", fmt.Sprintf("translate(0,%s)", fmtNum(plot.Height)))
	applyAxisStyles(xAxis, colors.ChartText)
	applyAxisStyles(drawAxis(g, axisLeft, "axis--y", plot.Height, bandTicks(y)), colors.ChartText)

	for _, rec := range ds {
		by, _ := y.Scale(rec.String(desc.XKey))
		bar := g.Append("rect").Class("bar").
			AttrF("x", 0).
			AttrF("y", by).
			AttrF("width", x.Scale(rec.Number(desc.YKey))).
			AttrF("height", y.Bandwidth()).
			Attr("fill", colors.Accent)
		plot.Marks = append(plot.Marks, bar)
	}
}

// GroupBubbles sums value per (category, sub-category) pair, keeping the
// first-seen order of categories and, within each, of sub-categories.
func GroupBubbles(ds models.Dataset, categoryKey, subKey, valueKey string) []BubbleDatum {
	type group struct {
		subs  []string
		total map[string]float64
	}
	var order []string
	groups := make(map[string]*group)
	for _, rec := range ds {
		cat, sub := rec.String(categoryKey), rec.String(subKey)
		grp, ok := groups[cat]
		if !ok {
			grp = &group{total: make(map[string]float64)}
			groups[cat] = grp
			order = append(order, cat)
		}
		if _, ok := grp.total[sub]; !ok {
			grp.subs = append(grp.subs, sub)
		}
		grp.total[sub] += rec.Number(valueKey)
	}

	var out []BubbleDatum
	for _, cat := range order {
		grp := groups[cat]
		for _, sub := range grp.subs {
			out = append(out, BubbleDatum{Category: cat, SubCategory: sub, Total: grp.total[sub]})
		}
	}
	return out
}

func (r *LowLevelRenderer) renderBubble(g *surface.Node, ds models.Dataset, desc Descriptor, colors theme.ColorSet, plot *Plot) {
	style := desc.style()
	categories := ds.Distinct(desc.XKey)
	bubbles := GroupBubbles(ds, desc.XKey, desc.YKey, desc.ValueKey)

	maxTotal := 0.0
	for _, b := range bubbles {
		if b.Total > maxTotal {
			maxTotal = b.Total
		}
	}

	x := NewPointScale(categories, 0, plot.Width, 0.5)
	y := NewPointScale(ds.Distinct(desc.YKey), plot.Height, 0, 0.5)
	radius := NewSqrtScale(maxTotal, style.MinRadius, style.MaxRadius)
	color := NewOrdinalScale(categories, Category10)
	plot.XBand, plot.YBand, plot.Radius, plot.Color, plot.Bubbles = x, y, radius, color, bubbles

	xAxis := drawAxis(g, axisBottom, "axis--x", plot.Width, bandTicks(x))
	xAxis.Attr("transform", fmt.Sprintf("translate(0,%s)", fmtNum(plot.Height)))
	rotation := style.TickRotation
	if rotation == 0 {
		rotation = -30
	}
	rotateLabels(xAxis, rotation, "", "")
	applyAxisStyles(xAxis, colors.ChartText)
	applyAxisStyles(drawAxis(g, axisLeft, "axis--y", plot.Height, bandTicks(y)), colors.ChartText)

	plot.Marks = surface.JoinKeyed(g, "circle", "bubble", bubbles,
		func(b BubbleDatum) string { return b.Category + "\x00" + b.SubCategory },
		func(n *surface.Node, b BubbleDatum) {
			cx, _ := x.Scale(b.Category)
			cy, _ := y.Scale(b.SubCategory)
			n.AttrF("cx", cx).
				AttrF("cy", cy).
				AttrF("r", radius.Scale(b.Total)).
				Attr("fill", color.Scale(b.Category)).
				AttrF("opacity", style.Opacity).
				OnHover(surface.Hover{
					Style:   map[string]string{"stroke": "black", "stroke-width": "2"},
					Restore: map[string]string{"stroke": "none"},
					Tooltip: []string{
						"Categoría: " + b.Category,
						"Subcategoría: " + b.SubCategory,
						"Ventas: " + FormatCurrency(b.Total),
					},
				})
		})
}

type heatCell struct {
	month string
	day   string
	value float64
}

func (r *LowLevelRenderer) renderHeatmap(g *surface.Node, ds models.Dataset, desc Descriptor, colors theme.ColorSet, plot *Plot) {
	days := make([]string, 31)
	for i := range days {
		days[i] = strconv.Itoa(i + 1)
	}

	x := NewBandScale(days, 0, plot.Width, 0.01, 0.01, false)
	// Range runs bottom-up so January sits at the bottom and December on top.
	y := NewBandScale(Months, plot.Height, 0, 0.01, 0.01, false)
	fill := NewSequentialScale(ds.Max(desc.ValueKey))
	plot.XBand, plot.YBand, plot.Fill = x, y, fill

	xAxis := drawAxis(g, axisBottom, "axis--x", plot.Width, bandTicks(x))
	xAxis.Attr("transform", fmt.Sprintf("translate(0,%s)", fmtNum(plot.Height)))
	applyAxisStyles(xAxis, colors.ChartText)
	applyAxisStyles(drawAxis(g, axisLeft, "axis--y", plot.Height, bandTicks(y)), colors.ChartText)

	cells := make([]heatCell, 0, len(ds))
	for _, rec := range ds {
		c := heatCell{month: rec.String(desc.YKey), day: rec.String(desc.XKey), value: rec.Number(desc.ValueKey)}
		if _, ok := x.Scale(c.day); !ok {
			r.log.Debug("Heatmap record outside the day axis", map[string]interface{}{"day": c.day})
			continue
		}
		if _, ok := y.Scale(c.month); !ok {
			r.log.Debug("Heatmap record outside the month axis", map[string]interface{}{"month": c.month})
			continue
		}
		cells = append(cells, c)
	}

	plot.Marks = surface.JoinKeyed(g, "rect", "cell", cells,
		func(c heatCell) string { return c.month + ":" + c.day },
		func(n *surface.Node, c heatCell) {
			cx, _ := x.Scale(c.day)
			cy, _ := y.Scale(c.month)
			n.AttrF("x", cx).
				AttrF("y", cy).
				AttrF("width", x.Bandwidth()).
				AttrF("height", y.Bandwidth()).
				AttrF("data-value", c.value).
				Style("fill", fill.Scale(c.value)).
				Style("stroke", colors.Border).
				Style("stroke-width", "1").
				OnHover(surface.Hover{
					Style: map[string]string{"stroke": "black", "stroke-width": "2"},
					Tooltip: []string{
						fmt.Sprintf("Fecha: %s %s", c.day, c.month),
						"Ventas: " + FormatCurrency(c.value),
					},
				})
		})
}
