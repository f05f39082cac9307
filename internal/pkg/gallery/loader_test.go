package gallery

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/imalink"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// fakeSearcher serves a fixed corpus in offset/limit pages.
type fakeSearcher struct {
	mu     sync.Mutex
	corpus []models.Photo
	calls  int

	// totalOverride fakes a backend whose reported total disagrees with
	// what it actually serves.
	totalOverride int

	// onPage runs after serving page n (1-based), before returning.
	onPage func(n int)
}

func corpusOf(n int) []models.Photo {
	photos := make([]models.Photo, 0, n)
	for i := 0; i < n; i++ {
		photos = append(photos, models.Photo{Hothash: fmt.Sprintf("p%03d", i)})
	}
	return photos
}

func (f *fakeSearcher) SearchPhotos(_ context.Context, params models.SearchParams) (*imalink.PhotoPage, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls

	start := params.Offset
	if start > len(f.corpus) {
		start = len(f.corpus)
	}
	end := start + params.Limit
	if end > len(f.corpus) {
		end = len(f.corpus)
	}
	page := &imalink.PhotoPage{
		Photos: f.corpus[start:end],
		Total:  len(f.corpus),
	}
	if f.totalOverride > 0 {
		page.Total = f.totalOverride
	}
	f.mu.Unlock()

	if f.onPage != nil {
		f.onPage(call)
	}
	return page, nil
}

func TestSearchLoadsFirstPage(t *testing.T) {
	searcher := &fakeSearcher{corpus: corpusOf(25)}
	cache := photocache.New()
	loader := NewLoader(searcher, cache, 10)

	require.NoError(t, loader.Search(context.Background(), models.SearchParams{}))

	assert.Equal(t, 10, loader.Loaded())
	assert.Equal(t, 25, loader.Total())
	assert.True(t, loader.HasMore())
	assert.Equal(t, 10, cache.Len(), "every fetched record lands in the cache")
	assert.Equal(t, "p000", loader.Hashes()[0])
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	searcher := &fakeSearcher{corpus: corpusOf(25)}
	loader := NewLoader(searcher, photocache.New(), 10)
	require.NoError(t, loader.Search(context.Background(), models.SearchParams{}))

	require.NoError(t, loader.LoadMore(context.Background()))
	require.NoError(t, loader.LoadMore(context.Background()))

	hashes := loader.Hashes()
	require.Len(t, hashes, 25)
	assert.Equal(t, "p010", hashes[10])
	assert.Equal(t, "p024", hashes[24])
	assert.False(t, loader.HasMore())

	// Further LoadMore calls are no-ops.
	calls := searcher.calls
	require.NoError(t, loader.LoadMore(context.Background()))
	assert.Equal(t, calls, searcher.calls)
}

func TestLoadAllFetchesEverything(t *testing.T) {
	searcher := &fakeSearcher{corpus: corpusOf(42)}
	loader := NewLoader(searcher, photocache.New(), 10)

	require.NoError(t, loader.LoadAll(context.Background()))

	assert.Equal(t, 42, loader.Loaded())
	assert.False(t, loader.HasMore())
}

func TestLoadAllOnEmptyResultSet(t *testing.T) {
	searcher := &fakeSearcher{corpus: nil}
	loader := NewLoader(searcher, photocache.New(), 10)

	require.NoError(t, loader.LoadAll(context.Background()))

	assert.Zero(t, loader.Loaded())
	assert.False(t, loader.HasMore())
	assert.Equal(t, 1, searcher.calls)
}

func TestCancelStopsBetweenPages(t *testing.T) {
	searcher := &fakeSearcher{corpus: corpusOf(50)}
	loader := NewLoader(searcher, photocache.New(), 10)
	searcher.onPage = func(n int) {
		if n == 2 {
			loader.CancelLoadAll()
		}
	}

	require.NoError(t, loader.LoadAll(context.Background()))

	// Pages already loaded stay loaded; nothing after the cancel.
	assert.Equal(t, 20, loader.Loaded())
	assert.Equal(t, 2, searcher.calls)
	assert.True(t, loader.HasMore())
}

func TestNewSearchResetsPreviousResults(t *testing.T) {
	searcher := &fakeSearcher{corpus: corpusOf(30)}
	loader := NewLoader(searcher, photocache.New(), 10)
	require.NoError(t, loader.Search(context.Background(), models.SearchParams{}))
	require.NoError(t, loader.LoadMore(context.Background()))
	require.Equal(t, 20, loader.Loaded())

	rating := 5
	require.NoError(t, loader.Search(context.Background(), models.SearchParams{RatingMin: &rating}))

	assert.Equal(t, 10, loader.Loaded())
	assert.Equal(t, 5, *loader.Params().RatingMin)
}

func TestShortPageEndsPaging(t *testing.T) {
	// Backend reports a bigger total than it actually serves.
	searcher := &fakeSearcher{corpus: corpusOf(7), totalOverride: 20}
	loader := NewLoader(searcher, photocache.New(), 10)

	require.NoError(t, loader.Search(context.Background(), models.SearchParams{}))

	assert.Equal(t, 7, loader.Loaded())
	assert.False(t, loader.HasMore())
}
