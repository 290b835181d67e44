package surface

import (
	"fmt"
	"strings"
)

// Kind distinguishes vector surfaces (retained scene graph) from canvas
// surfaces (host for a declarative chart instance).
type Kind int

const (
	Vector Kind = iota
	Canvas
)

func (k Kind) String() string {
	if k == Canvas {
		return "canvas"
	}
	return "vector"
}

// Default size of a canvas recreated by ResetCanvas.
const (
	DefaultCanvasWidth  = 400
	DefaultCanvasHeight = 200
)

// TooltipClass marks tooltip overlays inserted on hover.
const TooltipClass = "tooltip"

// Tooltip offset from the cursor.
const (
	TooltipOffsetX = 5
	TooltipOffsetY = -28
)

// Spec declares a surface in a page layout.
type Spec struct {
	ID     string
	Kind   Kind
	Width  int
	Height int
	Title  string
}

// Surface is a named drawing target. Surfaces are not safe for concurrent
// use; every access goes through the render loop.
type Surface struct {
	id     string
	kind   Kind
	width  int
	height int
	title  string

	root *Node

	markup      string
	placeholder string
}

func newSurface(spec Spec) *Surface {
	s := &Surface{
		id:     spec.ID,
		kind:   spec.Kind,
		width:  spec.Width,
		height: spec.Height,
		title:  spec.Title,
	}
	if s.width <= 0 {
		s.width = DefaultCanvasWidth
	}
	if s.height <= 0 {
		s.height = DefaultCanvasHeight
	}
	s.root = s.newRoot()
	return s
}

func (s *Surface) newRoot() *Node {
	root := newNode("svg")
	root.Attr("id", s.id).AttrF("width", float64(s.width)).AttrF("height", float64(s.height))
	return root
}

func (s *Surface) ID() string    { return s.id }
func (s *Surface) Kind() Kind    { return s.kind }
func (s *Surface) Width() int    { return s.width }
func (s *Surface) Height() int   { return s.height }
func (s *Surface) Title() string { return s.title }

// Root returns the top-level scene node of a vector surface.
func (s *Surface) Root() *Node {
	return s.root
}

// Clear removes all content. Calling it on an empty surface is a no-op.
func (s *Surface) Clear() {
	s.root.RemoveChildren()
	s.markup = ""
}

// Empty reports whether the surface holds no drawing.
func (s *Surface) Empty() bool {
	return len(s.root.children) == 0 && s.markup == ""
}

// SetMarkup binds the markup of a chart instance to a canvas surface.
func (s *Surface) SetMarkup(markup string) {
	s.markup = markup
	s.placeholder = ""
}

// Markup returns the bound chart markup.
func (s *Surface) Markup() string {
	return s.markup
}

// Placeholder returns the message left by ResetCanvas, if any.
func (s *Surface) Placeholder() string {
	return s.placeholder
}

// Hover simulates the cursor entering n at (x, y): the hover style is applied
// and a tooltip is inserted next to the cursor.
func (s *Surface) Hover(n *Node, x, y float64) error {
	if n.hover == nil {
		return fmt.Errorf("node <%s> on surface %s has no hover behaviour", n.Tag, s.id)
	}
	if n.baseStyle == nil {
		n.baseStyle = make(map[string]string, len(n.hover.Style))
		for k := range n.hover.Style {
			n.baseStyle[k] = n.style[k]
		}
	}
	for k, v := range n.hover.Style {
		n.style[k] = v
	}

	if len(n.hover.Tooltip) == 0 {
		return nil
	}
	tip := s.root.Append("g").Class(TooltipClass).
		Attr("transform", fmt.Sprintf("translate(%s,%s)", formatFloat(x+TooltipOffsetX), formatFloat(y+TooltipOffsetY)))
	tip.Append("rect").
		AttrF("width", float64(tooltipWidth(n.hover.Tooltip))).
		AttrF("height", float64(14*len(n.hover.Tooltip)+6)).
		Attr("fill", "#ffffff").
		Attr("stroke", "#cccccc").
		Attr("rx", "4")
	for i, line := range n.hover.Tooltip {
		tip.Append("text").AttrF("x", 4).AttrF("y", float64(14*(i+1))).Attr("font-size", "11px").Text(line)
	}
	return nil
}

// Leave simulates the cursor leaving n: the base style comes back and every
// tooltip on the surface is removed.
func (s *Surface) Leave(n *Node) {
	if n.hover != nil {
		for k, v := range n.hover.Restore {
			n.style[k] = v
		}
		for k, v := range n.baseStyle {
			if _, ok := n.hover.Restore[k]; ok {
				continue
			}
			if v == "" {
				delete(n.style, k)
			} else {
				n.style[k] = v
			}
		}
		n.baseStyle = nil
	}
	for _, tip := range s.Tooltips() {
		tip.Remove()
	}
}

// Tooltips returns the tooltip overlays currently shown.
func (s *Surface) Tooltips() []*Node {
	return s.root.SelectClass(TooltipClass)
}

func tooltipWidth(lines []string) int {
	widest := 0
	for _, l := range lines {
		if n := len([]rune(strings.TrimSpace(l))); n > widest {
			widest = n
		}
	}
	return widest*7 + 8
}
