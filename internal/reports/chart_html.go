package reports

import (
	"bytes"
	"fmt"
	"html/template"

	"salesdash/internal/surface"
)

type canvasData struct {
	ID          string
	Title       string
	Theme       string
	CSS         template.CSS
	Markup      template.HTML
	Placeholder string
	Width       int
	Height      int
}

// BuildCanvasHTML renders a canvas surface as a standalone page: the bound
// chart instance when there is one, otherwise its placeholder over an empty
// canvas. Call it from the render loop.
func (h *HTMLBuilder) BuildCanvasHTML(s *surface.Surface, theme string) (string, error) {
	if s.Kind() != surface.Canvas {
		return "", fmt.Errorf("surface %s is not a canvas", s.ID())
	}

	var buf bytes.Buffer
	err := h.canvas.Execute(&buf, canvasData{
		ID:          s.ID(),
		Title:       s.Title(),
		Theme:       theme,
		CSS:         h.css,
		Markup:      template.HTML(s.Markup()),
		Placeholder: s.Placeholder(),
		Width:       s.Width(),
		Height:      s.Height(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render canvas %s: %w", s.ID(), err)
	}
	return buf.String(), nil
}
