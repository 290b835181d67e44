package reports

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"salesdash/internal/config"
	"salesdash/internal/dispatch"
	"salesdash/internal/surface"
)

// HTMLBuilder renders page shells and canvas frames.
type HTMLBuilder struct {
	templateLoader *TemplateLoader
	goldmark       goldmark.Markdown
	page           *template.Template
	canvas         *template.Template
	css            template.CSS
}

// NewHTMLBuilder creates an HTML builder
func NewHTMLBuilder() (*HTMLBuilder, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	loader := NewTemplateLoader()
	page, err := loader.LoadHTMLTemplate("page.html")
	if err != nil {
		return nil, err
	}
	canvas, err := loader.LoadHTMLTemplate("canvas.html")
	if err != nil {
		return nil, err
	}
	css, err := loader.LoadCSSStyles()
	if err != nil {
		return nil, fmt.Errorf("failed to load CSS: %w", err)
	}

	return &HTMLBuilder{
		templateLoader: loader,
		goldmark:       md,
		page:           page,
		canvas:         canvas,
		css:            template.CSS(css),
	}, nil
}

// NavLink is one sidebar entry.
type NavLink struct {
	Route  string
	Label  string
	Active bool
}

// SurfaceView is one chart card. Vector surfaces are inlined, canvas
// surfaces are framed.
type SurfaceView struct {
	ID       string
	Title    string
	Height   int
	Inline   template.HTML
	FrameURL string
}

// TemplateData represents the data structure for the page template
type TemplateData struct {
	Route       string
	Title       string
	Theme       string
	Notes       template.HTML
	CSS         template.CSS
	Nav         []NavLink
	Surfaces    []SurfaceView
	GeneratedAt string
	Version     string
}

// ConvertMarkdownToHTML converts markdown to HTML using goldmark
func (h *HTMLBuilder) ConvertMarkdownToHTML(markdownContent string) (string, error) {
	var buf bytes.Buffer
	if err := h.goldmark.Convert([]byte(markdownContent), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

// FrameURL is where a canvas surface's standalone page is served.
func FrameURL(surfaceID string) string {
	return "/surfaces/" + surfaceID
}

// BuildPage renders the page shell for doc. Call it from the render loop.
func (h *HTMLBuilder) BuildPage(page *dispatch.Page, pages []*dispatch.Page, doc *surface.Document, theme string) (string, error) {
	notes, err := h.ConvertMarkdownToHTML(page.Notes)
	if err != nil {
		return "", err
	}

	data := TemplateData{
		Route:       page.Route,
		Title:       page.Title,
		Theme:       theme,
		Notes:       template.HTML(notes),
		CSS:         h.css,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		Version:     config.GetVersion(),
	}
	for _, p := range pages {
		data.Nav = append(data.Nav, NavLink{Route: p.Route, Label: ToTitleCase(p.Name), Active: p.Route == page.Route})
	}
	for _, s := range doc.Surfaces() {
		view := SurfaceView{ID: s.ID(), Title: s.Title(), Height: s.Height()}
		if s.Kind() == surface.Vector {
			view.Inline = template.HTML(s.SVG())
		} else {
			view.FrameURL = FrameURL(s.ID())
		}
		data.Surfaces = append(data.Surfaces, view)
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
