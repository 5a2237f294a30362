// Package registry provides a global registry of named easing functions.
// Easings register themselves in init() functions, allowing the CLI and
// hosts to pick one by name without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Ease maps linear progress t in [0, 1] to eased progress.
type Ease func(t float64) float64

// Info contains metadata about a registered easing.
type Info struct {
	ID    string
	Title string
}

var (
	easings = make(map[string]Ease)
	titles  = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds an easing function to the registry.
// Typically called from an init() function.
// Panics if an easing with the same ID is already registered.
func Register(id, title string, fn Ease) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := easings[id]; exists {
		panic(fmt.Sprintf("registry: easing %q already registered", id))
	}

	easings[id] = fn
	titles[id] = title
}

// List returns information about all registered easings, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(easings))
	for id := range easings {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the easing registered under id.
// Returns an error if the ID is not registered.
func Get(id string) (Ease, error) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := easings[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown easing %q", id)
	}

	return fn, nil
}

// Exists checks if an easing with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := easings[id]
	return ok
}
