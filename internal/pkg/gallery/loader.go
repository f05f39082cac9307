// Package gallery drives the paged photo grid: it runs searches against
// the remote API, feeds every fetched record into the photo cache and
// keeps the ordered list of fingerprints the grid renders from.
package gallery

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/imalink"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// DefaultPageSize is the batch size for paged search requests.
const DefaultPageSize = 100

// ErrLoadInProgress is returned when a page load is requested while
// another one is still running. Pages are strictly sequential; parallel
// page fetches would scramble the grid order.
var ErrLoadInProgress = errors.New("gallery: a page load is already in progress")

// Searcher is the search surface of the remote API the loader needs.
type Searcher interface {
	SearchPhotos(ctx context.Context, params models.SearchParams) (*imalink.PhotoPage, error)
}

// Loader pages through one search result set. All records land in the
// shared photo cache; the loader itself only remembers order and totals.
type Loader struct {
	api      Searcher
	cache    *photocache.Cache
	pageSize int

	mu      sync.Mutex
	params  models.SearchParams
	hashes  []string
	total   int
	fetched bool
	loading bool

	cancelAll atomic.Bool
}

// NewLoader creates a loader over the given API and cache.
func NewLoader(api Searcher, cache *photocache.Cache, pageSize int) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Loader{
		api:      api,
		cache:    cache,
		pageSize: pageSize,
	}
}

// Search starts a new result set: previous pages are discarded and the
// first page is fetched.
func (l *Loader) Search(ctx context.Context, params models.SearchParams) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.loading = true
	l.params = params
	l.hashes = nil
	l.total = 0
	l.fetched = false
	l.mu.Unlock()

	err := l.loadPage(ctx)

	l.mu.Lock()
	l.loading = false
	l.mu.Unlock()
	return err
}

// LoadMore fetches the next page of the current result set. A no-op when
// everything is already loaded.
func (l *Loader) LoadMore(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	if l.fetched && len(l.hashes) >= l.total {
		l.mu.Unlock()
		return nil
	}
	l.loading = true
	l.mu.Unlock()

	err := l.loadPage(ctx)

	l.mu.Lock()
	l.loading = false
	l.mu.Unlock()
	return err
}

// LoadAll keeps fetching pages until the full result set is in. The
// cancel flag is polled between pages, so a cancel never interrupts an
// in-flight request but stops before the next one; pages already loaded
// stay loaded.
func (l *Loader) LoadAll(ctx context.Context) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.loading = true
	l.mu.Unlock()
	l.cancelAll.Store(false)

	var err error
	for {
		l.mu.Lock()
		done := l.fetched && len(l.hashes) >= l.total
		l.mu.Unlock()
		if done {
			break
		}
		if l.cancelAll.Load() {
			log.Infof("[Gallery] load-all cancelled after %d of %d photos", l.Loaded(), l.Total())
			break
		}
		if err = l.loadPage(ctx); err != nil {
			break
		}
	}

	l.mu.Lock()
	l.loading = false
	l.mu.Unlock()
	return err
}

// CancelLoadAll asks a running LoadAll to stop after the current page.
func (l *Loader) CancelLoadAll() {
	l.cancelAll.Store(true)
}

// loadPage fetches one page at the current offset and appends it.
func (l *Loader) loadPage(ctx context.Context) error {
	l.mu.Lock()
	params := l.params
	params.Offset = len(l.hashes)
	params.Limit = l.pageSize
	l.mu.Unlock()

	page, err := l.api.SearchPhotos(ctx, params)
	if err != nil {
		return err
	}

	l.cache.PutMany(page.Photos)

	l.mu.Lock()
	for _, p := range page.Photos {
		l.hashes = append(l.hashes, p.Hothash)
	}
	l.total = page.Total
	l.fetched = true
	// A short page means the backend has nothing more even if the
	// reported total says otherwise.
	if len(page.Photos) < l.pageSize && len(l.hashes) < l.total {
		l.total = len(l.hashes)
	}
	l.mu.Unlock()
	return nil
}

// Hashes returns the ordered fingerprints loaded so far.
func (l *Loader) Hashes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.hashes))
	copy(out, l.hashes)
	return out
}

// Loaded returns how many photos are loaded.
func (l *Loader) Loaded() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hashes)
}

// Total returns the size of the full result set as reported by the
// backend, 0 before the first page arrives.
func (l *Loader) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// HasMore reports whether further pages exist.
func (l *Loader) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.fetched || len(l.hashes) < l.total
}

// Params returns the active search parameters.
func (l *Loader) Params() models.SearchParams {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.params
}
