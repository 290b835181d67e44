package surface

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	translateRe = regexp.MustCompile(`translate\(\s*(-?[\d.]+)[,\s]+(-?[\d.]+)\s*\)`)
	rotateRe    = regexp.MustCompile(`rotate\(\s*(-?[\d.]+)\s*\)`)
)

// Export draws a vector surface through a go-chart renderer (chart.PNG or
// chart.SVG) and writes the result to w. A non-empty background fills the
// surface first.
func (s *Surface) Export(w io.Writer, provider chart.RendererProvider, background string) error {
	if s.kind != Vector {
		return fmt.Errorf("surface %s is a %s surface and cannot be exported", s.id, s.kind)
	}
	r, err := provider(s.width, s.height)
	if err != nil {
		return fmt.Errorf("failed to create renderer for %s: %w", s.id, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)

	if c, ok := ParseColor(background, 1); ok {
		r.SetFillColor(c)
		r.SetStrokeColor(drawing.ColorTransparent)
		r.SetStrokeWidth(0)
		r.MoveTo(0, 0)
		r.LineTo(s.width, 0)
		r.LineTo(s.width, s.height)
		r.LineTo(0, s.height)
		r.Close()
		r.Fill()
	}

	for _, c := range s.root.children {
		drawNode(r, c, 0, 0)
	}
	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode surface %s: %w", s.id, err)
	}
	return nil
}

func drawNode(r chart.Renderer, n *Node, ox, oy float64) {
	if m := translateRe.FindStringSubmatch(n.attrs["transform"]); m != nil {
		tx, _ := strconv.ParseFloat(m[1], 64)
		ty, _ := strconv.ParseFloat(m[2], 64)
		ox, oy = ox+tx, oy+ty
	}

	r.ResetStyle()
	opacity := 1.0
	if v := n.attr("opacity"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			opacity = f
		}
	}
	fill, hasFill := ParseColor(n.attr("fill"), opacity)
	stroke, hasStroke := ParseColor(n.attr("stroke"), opacity)
	strokeWidth := 1.0
	if v, err := strconv.ParseFloat(strings.TrimSuffix(n.attr("stroke-width"), "px"), 64); err == nil {
		strokeWidth = v
	}

	switch n.Tag {
	case "rect":
		x, y := ox+n.GetAttrF("x"), oy+n.GetAttrF("y")
		w, h := n.GetAttrF("width"), n.GetAttrF("height")
		if !hasFill && n.attr("fill") == "" {
			fill, hasFill = drawing.ColorBlack, true
		}
		applyPaint(r, fill, hasFill, stroke, hasStroke, strokeWidth)
		r.MoveTo(round(x), round(y))
		r.LineTo(round(x+w), round(y))
		r.LineTo(round(x+w), round(y+h))
		r.LineTo(round(x), round(y+h))
		r.Close()
		paint(r, hasFill, hasStroke)
	case "circle":
		if !hasFill && n.attr("fill") == "" {
			fill, hasFill = drawing.ColorBlack, true
		}
		applyPaint(r, fill, hasFill, stroke, hasStroke, strokeWidth)
		r.Circle(n.GetAttrF("r"), round(ox+n.GetAttrF("cx")), round(oy+n.GetAttrF("cy")))
		paint(r, hasFill, hasStroke)
	case "line":
		if !hasStroke {
			return
		}
		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(strokeWidth)
		r.MoveTo(round(ox+n.GetAttrF("x1")), round(oy+n.GetAttrF("y1")))
		r.LineTo(round(ox+n.GetAttrF("x2")), round(oy+n.GetAttrF("y2")))
		r.Stroke()
	case "text":
		drawText(r, n, ox, oy, fill, hasFill)
	}

	for _, c := range n.children {
		drawNode(r, c, ox, oy)
	}
}

func drawText(r chart.Renderer, n *Node, ox, oy float64, fill drawing.Color, hasFill bool) {
	if n.text == "" {
		return
	}
	if !hasFill {
		fill = drawing.ColorBlack
	}
	size := 10.0
	if v, err := strconv.ParseFloat(strings.TrimSuffix(n.attr("font-size"), "px"), 64); err == nil {
		size = v
	}
	r.SetFontColor(fill)
	r.SetFontSize(size)

	box := r.MeasureText(n.text)
	x := ox + n.GetAttrF("x")
	y := oy + n.GetAttrF("y")
	switch n.attr("text-anchor") {
	case "middle":
		x -= float64(box.Width()) / 2
	case "end":
		x -= float64(box.Width())
	}
	if n.attr("dominant-baseline") == "middle" {
		y += float64(box.Height()) / 2
	}

	if m := rotateRe.FindStringSubmatch(n.attrs["transform"]); m != nil {
		deg, _ := strconv.ParseFloat(m[1], 64)
		r.SetTextRotation(deg * math.Pi / 180)
		defer r.ClearTextRotation()
	}
	r.Text(n.text, round(x), round(y))
}

func applyPaint(r chart.Renderer, fill drawing.Color, hasFill bool, stroke drawing.Color, hasStroke bool, width float64) {
	if hasFill {
		r.SetFillColor(fill)
	}
	if hasStroke {
		r.SetStrokeColor(stroke)
		r.SetStrokeWidth(width)
	}
}

func paint(r chart.Renderer, hasFill, hasStroke bool) {
	switch {
	case hasFill && hasStroke:
		r.FillStroke()
	case hasFill:
		r.Fill()
	case hasStroke:
		r.Stroke()
	}
}

// attr resolves a presentation property, inline style taking precedence.
func (n *Node) attr(name string) string {
	if v, ok := n.style[name]; ok {
		return v
	}
	return n.attrs[name]
}

// ParseColor turns "#rgb", "#rrggbb", "#rrggbbaa", "rgb(...)", "rgba(...)" or
// a basic color name into a drawing color. "none", "" and malformed values
// are reported as absent.
func ParseColor(s string, opacity float64) (drawing.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	var c drawing.Color
	switch {
	case s == "" || s == "none" || s == "transparent":
		return drawing.Color{}, false
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if !validHex(hex) {
			return drawing.Color{}, false
		}
		if len(hex) == 8 {
			c = drawing.ColorFromHex(hex[:6])
			a, _ := strconv.ParseUint(hex[6:], 16, 8)
			c.A = uint8(a)
		} else {
			c = drawing.ColorFromHex(hex)
		}
	case strings.HasPrefix(s, "rgba("):
		if !validRGBFunc(s, 4) {
			return drawing.Color{}, false
		}
		c = drawing.ColorFromRGBA(s)
	case strings.HasPrefix(s, "rgb("):
		if !validRGBFunc(s, 3) {
			return drawing.Color{}, false
		}
		c = drawing.ColorFromRGB(s)
	default:
		c = drawing.ColorFromKnown(s)
		if c.IsZero() {
			return drawing.Color{}, false
		}
	}
	if opacity < 1 {
		c = c.WithAlpha(uint8(float64(c.A) * opacity))
	}
	return c, true
}

func validHex(hex string) bool {
	switch len(hex) {
	case 3, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}

// validRGBFunc checks an rgb()/rgba() call has n channels, the first three
// integers in [0, 255].
func validRGBFunc(s string, n int) bool {
	open, close := strings.Index(s, "("), strings.LastIndex(s, ")")
	if open < 0 || close != len(s)-1 {
		return false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != n {
		return false
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 3 {
			if _, err := strconv.ParseFloat(p, 64); err != nil {
				return false
			}
			continue
		}
		if v, err := strconv.Atoi(p); err != nil || v < 0 || v > 255 {
			return false
		}
	}
	return true
}

func round(v float64) int {
	return int(math.Round(v))
}
