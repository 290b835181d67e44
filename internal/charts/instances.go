package charts

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Instance is a live chart bound to one canvas surface.
type Instance struct {
	ID        uuid.UUID
	SurfaceID string
	Kind      Kind
	Snippet   ChartSnippet
	Option    map[string]interface{}

	disposed atomic.Bool
}

// Dispose releases the instance. It is safe to call more than once.
func (i *Instance) Dispose() {
	i.disposed.Store(true)
}

// Disposed reports whether Dispose was called.
func (i *Instance) Disposed() bool {
	return i.disposed.Load()
}

// Markup returns the HTML that hosts the chart, or "" once disposed.
func (i *Instance) Markup() string {
	if i.Disposed() {
		return ""
	}
	return i.Snippet.HTML
}

// InstanceRegistry holds at most one live instance per surface.
type InstanceRegistry struct {
	mu        sync.Mutex
	instances map[string]*Instance
	created   int
	disposed  int
}

func NewInstanceRegistry() *InstanceRegistry {
	return &InstanceRegistry{instances: make(map[string]*Instance)}
}

// Replace disposes the instance bound to surfaceID, then builds and binds a
// new one, all under one lock. If build fails the surface is left without
// an instance.
func (r *InstanceRegistry) Replace(surfaceID string, build func() (*Instance, error)) (*Instance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disposeLocked(surfaceID)
	inst, err := build()
	if err != nil {
		return nil, err
	}
	r.instances[surfaceID] = inst
	r.created++
	return inst, nil
}

// Dispose releases the instance bound to surfaceID, if any.
func (r *InstanceRegistry) Dispose(surfaceID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disposeLocked(surfaceID)
}

func (r *InstanceRegistry) disposeLocked(surfaceID string) {
	if old, ok := r.instances[surfaceID]; ok {
		old.Dispose()
		delete(r.instances, surfaceID)
		r.disposed++
	}
}

// DisposeAll releases every instance.
func (r *InstanceRegistry) DisposeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.instances {
		r.disposeLocked(id)
	}
}

// Get returns the live instance bound to surfaceID.
func (r *InstanceRegistry) Get(surfaceID string) (*Instance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instances[surfaceID]
	return inst, ok
}

// Live counts bound instances that have not been disposed.
func (r *InstanceRegistry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, inst := range r.instances {
		if !inst.Disposed() {
			n++
		}
	}
	return n
}

// Stats returns how many instances were created and disposed so far.
func (r *InstanceRegistry) Stats() (created, disposed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.disposed
}
