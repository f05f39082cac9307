// Package photocache holds the process-wide in-memory cache of photo
// metadata records. The cache is constructed once at application start
// and handed to every consumer that needs lookups; it never fetches on
// its own and it never fails; a miss means "metadata not yet available".
package photocache

import (
	"sync"

	"github.com/trollfjell/imalink-web/app/models"
)

// DisplaySize selects the grid layout density. Presentation state only,
// kept next to the cache because both are shared across the whole UI.
type DisplaySize string

const (
	DisplaySmall    DisplaySize = "small"
	DisplayMedium   DisplaySize = "medium"
	DisplayLarge    DisplaySize = "large"
	DisplayDetailed DisplaySize = "detailed"
)

// ValidDisplaySize reports whether s is one of the known sizes.
func ValidDisplaySize(s string) bool {
	switch DisplaySize(s) {
	case DisplaySmall, DisplayMedium, DisplayLarge, DisplayDetailed:
		return true
	}
	return false
}

// GridConfig describes how a grid is rendered for a display size.
type GridConfig struct {
	Columns      int
	ShowMetadata bool
	ShowTags     bool
	ShowDate     bool
}

// DisplayConfigs maps each display size to its grid configuration.
var DisplayConfigs = map[DisplaySize]GridConfig{
	DisplaySmall:    {Columns: 10},
	DisplayMedium:   {Columns: 8},
	DisplayLarge:    {Columns: 5, ShowMetadata: true, ShowDate: true},
	DisplayDetailed: {Columns: 3, ShowMetadata: true, ShowTags: true, ShowDate: true},
}

// Cache maps hothash -> photo record. Entries are added or replaced on
// every fetch or mutation response and never proactively evicted; the
// cache lives for a single browsing session.
type Cache struct {
	mu          sync.RWMutex
	photos      map[string]models.Photo
	displaySize DisplaySize
}

// New creates an empty cache with the medium display size.
func New() *Cache {
	return &Cache{
		photos:      make(map[string]models.Photo),
		displaySize: DisplayMedium,
	}
}

// Put upserts one record by hothash. Last write wins, no merge.
func (c *Cache) Put(photo models.Photo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos[photo.Hothash] = photo
}

// PutMany upserts a batch of records.
func (c *Cache) PutMany(photos []models.Photo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range photos {
		c.photos[p.Hothash] = p
	}
}

// Get is a pure lookup; it never triggers a fetch. A miss is legal and
// must be handled by the caller as "not yet available".
func (c *Cache) Get(hothash string) (models.Photo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.photos[hothash]
	return p, ok
}

// Has reports whether a record is cached.
func (c *Cache) Has(hothash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.photos[hothash]
	return ok
}

// Update merge-patches an existing record. A miss is a documented no-op:
// a patch can legitimately arrive before the initial fetch.
func (c *Cache) Update(hothash string, fn func(*models.Photo)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.photos[hothash]
	if !ok {
		return
	}
	fn(&p)
	p.Hothash = hothash // the key is immutable
	c.photos[hothash] = p
}

// Remove drops one record.
func (c *Cache) Remove(hothash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.photos, hothash)
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.photos = make(map[string]models.Photo)
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.photos)
}

// DisplaySize returns the current grid display preference.
func (c *Cache) DisplaySize() DisplaySize {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.displaySize
}

// SetDisplaySize changes the grid display preference. No correctness
// invariant hangs off this; it only steers layout density.
func (c *Cache) SetDisplaySize(size DisplaySize) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.displaySize = size
}
