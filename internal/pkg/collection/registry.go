package collection

import (
	"sync"

	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// Registry hands out one editor per collection id so all requests that
// touch the same collection share the same serialized state machine.
type Registry struct {
	api    API
	photos PhotoLoader
	cache  *photocache.Cache

	mu      sync.Mutex
	editors map[uint]*Editor
}

// NewRegistry creates an empty registry backed by the given API client
// and photo cache.
func NewRegistry(api API, photos PhotoLoader, cache *photocache.Cache) *Registry {
	return &Registry{
		api:     api,
		photos:  photos,
		cache:   cache,
		editors: make(map[uint]*Editor),
	}
}

// Get returns the editor for the collection, creating it on first use.
// The returned editor may still be in StateIdle; callers trigger Load.
func (r *Registry) Get(id uint) *Editor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.editors[id]; ok {
		return e
	}
	e := NewEditor(id, r.api, r.photos, r.cache)
	r.editors[id] = e
	return e
}

// Drop forgets the editor for a collection, typically after the
// collection itself was deleted.
func (r *Registry) Drop(id uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.editors, id)
}
