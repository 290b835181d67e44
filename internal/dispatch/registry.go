// Package dispatch maps page routes to the charts they show and drives
// their loading and re-rendering.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"salesdash/internal/charts"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

var (
	ErrUnknownRoute   = errors.New("unknown route")
	ErrDuplicateRoute = errors.New("duplicate route")
	ErrInvalidPage    = errors.New("invalid page")
)

// ConfigBuilder turns a fetched dataset into a high-level chart config.
// colors is resolved for the render call that uses the config.
type ConfigBuilder func(ds models.Dataset, colors theme.ColorSet) *charts.Config

// Entry binds one data resource to the surface it is drawn on.
type Entry struct {
	Source    string
	SurfaceID string
	Kind      charts.Kind

	// Descriptor is used by low-level kinds; Build by high-level ones.
	Descriptor charts.Descriptor
	Build      ConfigBuilder
}

// Backend reports which renderer draws the entry.
func (e Entry) Backend() charts.Backend {
	return e.Kind.Backend()
}

// Page is one routed view: its layout and the charts loaded into it.
type Page struct {
	Route    string
	Name     string
	Title    string
	Notes    string
	Surfaces []surface.Spec
	Entries  []Entry
}

func (p *Page) surfaceSpec(id string) (surface.Spec, bool) {
	for _, s := range p.Surfaces {
		if s.ID == id {
			return s, true
		}
	}
	return surface.Spec{}, false
}

func (p *Page) validate() error {
	if !strings.HasPrefix(p.Route, "/") {
		return fmt.Errorf("%w: route %q must start with /", ErrInvalidPage, p.Route)
	}
	for _, e := range p.Entries {
		spec, ok := p.surfaceSpec(e.SurfaceID)
		if !ok {
			return fmt.Errorf("%w: %s: surface %s is not laid out", ErrInvalidPage, p.Route, e.SurfaceID)
		}
		switch e.Backend() {
		case charts.LowLevel:
			if spec.Kind != surface.Vector {
				return fmt.Errorf("%w: %s: %s needs a vector surface", ErrInvalidPage, p.Route, e.Kind)
			}
			if e.Descriptor.Kind != e.Kind {
				return fmt.Errorf("%w: %s: descriptor kind %s does not match %s", ErrInvalidPage, p.Route, e.Descriptor.Kind, e.Kind)
			}
			if err := e.Descriptor.Validate(); err != nil {
				return fmt.Errorf("%s: %w", p.Route, err)
			}
		case charts.HighLevel:
			if spec.Kind != surface.Canvas {
				return fmt.Errorf("%w: %s: %s needs a canvas surface", ErrInvalidPage, p.Route, e.Kind)
			}
			if e.Build == nil {
				return fmt.Errorf("%w: %s: %s has no config builder", ErrInvalidPage, p.Route, e.SurfaceID)
			}
		}
	}
	return nil
}

// Registry is the route table.
type Registry struct {
	pages map[string]*Page
	order []string
}

func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]*Page)}
}

// Register adds a page after checking its entries against its layout.
func (r *Registry) Register(p *Page) error {
	if err := p.validate(); err != nil {
		return err
	}
	if _, exists := r.pages[p.Route]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, p.Route)
	}
	r.pages[p.Route] = p
	r.order = append(r.order, p.Route)
	return nil
}

// Lookup returns the page for route.
func (r *Registry) Lookup(route string) (*Page, bool) {
	p, ok := r.pages[route]
	return p, ok
}

// Pages returns the pages in registration order.
func (r *Registry) Pages() []*Page {
	pages := make([]*Page, 0, len(r.order))
	for _, route := range r.order {
		pages = append(pages, r.pages[route])
	}
	return pages
}
