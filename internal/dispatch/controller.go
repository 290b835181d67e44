package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"salesdash/internal/charts"
	"salesdash/internal/fetchers"
	"salesdash/internal/logger"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

// ErrNoPage is returned when loading before any page has been navigated to.
var ErrNoPage = errors.New("no page loaded")

// Fetcher reads one resource, redirecting nav on an authorization failure.
type Fetcher interface {
	Fetch(ctx context.Context, path string, nav fetchers.Navigator) (models.Dataset, error)
}

// Options tune the controller.
type Options struct {
	SettleDelay time.Duration
	// DiscardStale drops a render whose load was superseded by a later load
	// of the same surface. Off, the last load to finish wins.
	DiscardStale bool
}

// session is everything bound to one navigation.
type session struct {
	page *Page
	doc  *surface.Document
	low  *charts.LowLevelRenderer
	high *charts.HighLevelRenderer
	gens map[string]uint64
}

// Controller owns the current page and re-renders it on load and theme
// toggle. Fetches run concurrently; renders run on the Loop.
type Controller struct {
	registry *Registry
	store    *theme.Store
	resolver *theme.Resolver
	fetcher  Fetcher
	loop     *Loop
	opts     Options
	log      *logger.Logger

	mu  sync.Mutex
	cur *session
}

// NewController wires a controller. The loop is shared with anything else
// that reads surfaces.
func NewController(registry *Registry, store *theme.Store, fetcher Fetcher, loop *Loop, opts Options, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{
		registry: registry,
		store:    store,
		resolver: theme.NewResolver(store),
		fetcher:  fetcher,
		loop:     loop,
		opts:     opts,
		log:      log.WithComponent("dispatch"),
	}
}

// Registry returns the route table.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Theme returns the active theme name.
func (c *Controller) Theme() string {
	return c.store.Active()
}

func (c *Controller) current() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// Page returns the current page, or nil before the first navigation.
func (c *Controller) Page() *Page {
	if s := c.current(); s != nil {
		return s.page
	}
	return nil
}

// Document returns the current page's document, or nil before the first
// navigation. Read it only inside Do.
func (c *Controller) Document() *surface.Document {
	if s := c.current(); s != nil {
		return s.doc
	}
	return nil
}

// Instances returns the current page's chart instance registry.
func (c *Controller) Instances() *charts.InstanceRegistry {
	if s := c.current(); s != nil {
		return s.high.Instances()
	}
	return nil
}

// Do runs fn on the render loop against the current document.
func (c *Controller) Do(ctx context.Context, fn func(doc *surface.Document) error) error {
	return c.loop.Do(ctx, func() error {
		s := c.current()
		if s == nil {
			return ErrNoPage
		}
		return fn(s.doc)
	})
}

// Navigate replaces the current page with a fresh document for route. Every
// chart instance of the previous page is disposed. It must not be called
// from a closure running on the loop.
func (c *Controller) Navigate(ctx context.Context, route string) (*Page, error) {
	page, ok := c.registry.Lookup(route)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, route)
	}

	err := c.loop.Do(ctx, func() error {
		doc := surface.NewDocument(page.Route, page.Surfaces...)
		next := &session{
			page: page,
			doc:  doc,
			low:  charts.NewLowLevelRenderer(doc, c.resolver, c.log),
			high: charts.NewHighLevelRenderer(doc, c.resolver, c.log),
			gens: make(map[string]uint64),
		}

		c.mu.Lock()
		prev := c.cur
		c.cur = next
		c.mu.Unlock()

		if prev != nil {
			prev.high.DisposeAll()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.log.Info("Page navigated", map[string]interface{}{"route": page.Route, "surfaces": len(page.Surfaces)})
	return page, nil
}

// LoadPage fetches every entry of the current page concurrently and renders
// each result as it arrives. A failed fetch is logged and leaves its surface
// untouched; render errors are returned.
func (c *Controller) LoadPage(ctx context.Context) error {
	s := c.current()
	if s == nil {
		return ErrNoPage
	}

	start := time.Now()
	var g errgroup.Group
	for _, entry := range s.page.Entries {
		stamp := c.begin(s, entry.SurfaceID)
		g.Go(func() error {
			return c.load(ctx, s, entry, stamp)
		})
	}
	err := g.Wait()

	c.log.Info("Page loaded", map[string]interface{}{
		"route":    s.page.Route,
		"entries":  len(s.page.Entries),
		"theme":    c.store.Active(),
		"duration": time.Since(start).String(),
	})
	return err
}

func (c *Controller) load(ctx context.Context, s *session, entry Entry, stamp uint64) error {
	ds, err := c.fetcher.Fetch(ctx, entry.Source, s.doc)
	if err != nil {
		c.log.Error("Error fetching chart data", err, map[string]interface{}{
			"source":  entry.Source,
			"surface": entry.SurfaceID,
		})
		return nil
	}

	return c.loop.Do(ctx, func() error {
		if c.opts.DiscardStale && !c.latest(s, entry.SurfaceID, stamp) {
			c.log.Debug("Discarding superseded load", map[string]interface{}{"surface": entry.SurfaceID})
			return nil
		}
		if err := s.render(entry, ds, c.resolver); err != nil {
			return fmt.Errorf("render %s: %w", entry.SurfaceID, err)
		}
		return nil
	})
}

// begin stamps a new load of surfaceID.
func (c *Controller) begin(s *session, surfaceID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	s.gens[surfaceID]++
	return s.gens[surfaceID]
}

// latest reports whether stamp is the newest load of surfaceID on the
// current page.
func (c *Controller) latest(s *session, surfaceID string, stamp uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur == s && s.gens[surfaceID] == stamp
}

func (s *session) render(entry Entry, ds models.Dataset, resolver *theme.Resolver) error {
	switch entry.Backend() {
	case charts.LowLevel:
		_, err := s.low.Render(ds, entry.SurfaceID, entry.Descriptor)
		return err
	case charts.HighLevel:
		var cfg *charts.Config
		if !ds.Empty() {
			cfg = entry.Build(ds, resolver.Colors())
		}
		return s.high.Render(ds, entry.SurfaceID, entry.Kind, cfg)
	default:
		return fmt.Errorf("%w: no backend for %s", charts.ErrInvalidDescriptor, entry.Kind)
	}
}

// ToggleTheme switches between light and dark, waits for the settle delay
// and reloads the current page. It returns the new theme.
func (c *Controller) ToggleTheme(ctx context.Context) (string, error) {
	next := c.store.Toggle()
	c.log.Info("Theme toggled", map[string]interface{}{"theme": next})

	if c.current() == nil {
		return next, nil
	}

	select {
	case <-time.After(c.opts.SettleDelay):
	case <-ctx.Done():
		return next, ctx.Err()
	}
	return next, c.LoadPage(ctx)
}

// Close disposes the current page's chart instances.
func (c *Controller) Close() {
	if s := c.current(); s != nil {
		s.high.DisposeAll()
	}
}
