package routecoordinator

import (
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
)

// Registry maps paths to coordinator factories.
// It is safe for concurrent use, so registration may race with lookups.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register stores f under f.Path().
//
// A factory with an empty path opts out of registration: nothing is stored and
// Register returns false. Registering a path twice is a programming error and
// panics with a *RouteError wrapping ErrRouteAlreadyExists.
func (r *Registry) Register(f Factory) bool {
	path := f.Path()
	if path == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[path]; exists {
		panic(newRouteError(ErrRouteAlreadyExists, path, nil))
	}
	r.factories[path] = f
	return true
}

// Lookup returns the factory registered for path. Matching is exact and case-sensitive.
func (r *Registry) Lookup(path string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[path]
	return f, ok
}

// Has returns true if a factory is registered for path.
func (r *Registry) Has(path string) bool {
	_, ok := r.Lookup(path)
	return ok
}

// Paths returns all registered paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.factories))
	for path := range r.factories {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.factories)
}

// Clear removes all registered factories.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = make(map[string]Factory)
}

// Suggest returns the registered path closest to path by edit distance, or ""
// when none is within maxDistance. Ties go to the lexically smaller path.
// It only feeds error messages; lookups stay exact.
func (r *Registry) Suggest(path string, maxDistance int) string {
	if maxDistance <= 0 {
		return ""
	}

	best := ""
	bestDistance := maxDistance + 1
	for _, candidate := range r.Paths() {
		d := levenshtein.ComputeDistance(path, candidate)
		if d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
