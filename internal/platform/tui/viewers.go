package tui

import (
	"sort"
	"sync"
	"time"
)

// ViewerID identifies one connected SSH viewer.
type ViewerID string

// Viewer describes a connected SSH viewer.
type Viewer struct {
	ID     ViewerID
	User   string
	Remote string
	Since  time.Time
}

// ViewerRegistry tracks connected viewers.
// Thread-safe for concurrent access.
type ViewerRegistry struct {
	mu      sync.RWMutex
	viewers map[ViewerID]Viewer
}

// NewViewerRegistry creates an empty registry.
func NewViewerRegistry() *ViewerRegistry {
	return &ViewerRegistry{
		viewers: make(map[ViewerID]Viewer),
	}
}

// Register adds a viewer to the registry.
func (r *ViewerRegistry) Register(v Viewer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewers[v.ID] = v
}

// Unregister removes a viewer from the registry.
func (r *ViewerRegistry) Unregister(id ViewerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.viewers, id)
}

// Get retrieves a viewer by ID.
func (r *ViewerRegistry) Get(id ViewerID) (Viewer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.viewers[id]
	return v, ok
}

// Count returns the number of connected viewers.
func (r *ViewerRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.viewers)
}

// List returns the connected viewers, longest connected first.
func (r *ViewerRegistry) List() []Viewer {
	r.mu.RLock()
	out := make([]Viewer, 0, len(r.viewers))
	for _, v := range r.viewers {
		out = append(out, v)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Since.Equal(out[j].Since) {
			return out[i].ID < out[j].ID
		}
		return out[i].Since.Before(out[j].Since)
	})
	return out
}
