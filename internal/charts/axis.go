package charts

import (
	"fmt"

	"salesdash/internal/surface"
)

type orient int

const (
	axisBottom orient = iota
	axisLeft
)

type tick struct {
	pos   float64
	label string
}

func bandTicks(b *BandScale) []tick {
	out := make([]tick, 0, len(b.Domain()))
	for _, v := range b.Domain() {
		p, _ := b.Center(v)
		out = append(out, tick{pos: p, label: v})
	}
	return out
}

func linearTicks(l *LinearScale, count int) []tick {
	values := l.Ticks(count)
	out := make([]tick, 0, len(values))
	for _, v := range values {
		out = append(out, tick{pos: l.Scale(v), label: FormatSI(v)})
	}
	return out
}

// drawAxis appends an axis group: a domain line plus one group per tick
// holding a tick mark and a label. extent is the axis length in pixels.
func drawAxis(parent *surface.Node, o orient, class string, extent float64, ticks []tick) *surface.Node {
	g := parent.Append("g").Class("axis " + class)
	switch o {
	case axisBottom:
		g.Append("line").Class("domain").AttrF("x1", 0).AttrF("x2", extent).AttrF("y1", 0).AttrF("y2", 0)
	case axisLeft:
		g.Append("line").Class("domain").AttrF("x1", 0).AttrF("x2", 0).AttrF("y1", 0).AttrF("y2", extent)
	}

	for _, t := range ticks {
		tg := g.Append("g").Class("tick")
		switch o {
		case axisBottom:
			tg.Attr("transform", fmt.Sprintf("translate(%s,0)", fmtNum(t.pos)))
			tg.Append("line").AttrF("y2", 6)
			tg.Append("text").AttrF("y", 9).Attr("dy", "0.71em").Attr("text-anchor", "middle").
				Attr("font-size", "10px").Text(t.label)
		case axisLeft:
			tg.Attr("transform", fmt.Sprintf("translate(0,%s)", fmtNum(t.pos)))
			tg.Append("line").AttrF("x2", -6)
			tg.Append("text").AttrF("x", -9).Attr("dy", "0.32em").Attr("text-anchor", "end").
				Attr("font-size", "10px").Text(t.label)
		}
	}
	return g
}

// rotateLabels tilts every tick label of an axis.
func rotateLabels(axis *surface.Node, degrees float64, dx, dy string) {
	for _, text := range axis.SelectTag("text") {
		text.Attr("transform", fmt.Sprintf("rotate(%s)", fmtNum(degrees))).Style("text-anchor", "end")
		if dx != "" {
			text.Attr("dx", dx)
		}
		if dy != "" {
			text.Attr("dy", dy)
		}
	}
}

// applyAxisStyles paints axis lines and labels in the chart-text color.
func applyAxisStyles(axis *surface.Node, color string) {
	for _, n := range axis.SelectTag("line", "path") {
		n.Style("stroke", color)
	}
	for _, n := range axis.SelectTag("text") {
		n.Style("fill", color)
	}
}

func fmtNum(v float64) string {
	return trimFloat(v)
}
