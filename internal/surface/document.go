package surface

import "sync"

// Document is the in-memory page markup: an ordered set of surfaces keyed by
// id, plus the navigation state of the page.
type Document struct {
	route    string
	order    []string
	surfaces map[string]*Surface

	mu       sync.Mutex
	redirect string
}

// NewDocument lays out a page from its surface specs.
func NewDocument(route string, specs ...Spec) *Document {
	d := &Document{route: route, surfaces: make(map[string]*Surface, len(specs))}
	for _, spec := range specs {
		if _, dup := d.surfaces[spec.ID]; dup {
			continue
		}
		d.order = append(d.order, spec.ID)
		d.surfaces[spec.ID] = newSurface(spec)
	}
	return d
}

// Route returns the page route the document was built for.
func (d *Document) Route() string {
	return d.route
}

// Surface looks up a surface by id.
func (d *Document) Surface(id string) (*Surface, bool) {
	s, ok := d.surfaces[id]
	return s, ok
}

// Surfaces returns every surface in layout order.
func (d *Document) Surfaces() []*Surface {
	out := make([]*Surface, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.surfaces[id])
	}
	return out
}

// ResetCanvas replaces the content of a canvas container with a placeholder
// message and a fresh, empty canvas bound to the same id. It reports false
// when id is not a canvas surface of this document.
func (d *Document) ResetCanvas(id, message string) bool {
	old, ok := d.surfaces[id]
	if !ok || old.kind != Canvas {
		return false
	}
	fresh := newSurface(Spec{ID: id, Kind: Canvas, Title: old.title})
	fresh.placeholder = message
	d.surfaces[id] = fresh
	return true
}

// Redirect records a navigation to path.
func (d *Document) Redirect(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.redirect = path
}

// RedirectTarget returns the pending redirect, or "".
func (d *Document) RedirectTarget() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.redirect
}
