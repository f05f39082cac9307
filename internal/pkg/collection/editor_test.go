package collection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// fakeBackend implements API and PhotoLoader against an in-memory item
// list with the same positional semantics as the real backend.
type fakeBackend struct {
	mu sync.Mutex

	items       []models.CollectionItem
	name        string
	description string

	getCalls    int
	updateCalls int
	photoCalls  int

	failToggleAt int // position whose toggle fails, -1 for never
	insertErr    error
	photoErr     error

	enterAdd   chan struct{} // closed-signals when AddItems starts
	releaseAdd chan struct{} // AddItems blocks until this closes
}

func newFakeBackend(items ...models.CollectionItem) *fakeBackend {
	return &fakeBackend{
		items:        items,
		name:         "Sommerferie",
		failToggleAt: -1,
	}
}

func (f *fakeBackend) GetCollection(context.Context, uint) (*models.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++

	items := make([]models.CollectionItem, len(f.items))
	copy(items, f.items)

	photos, texts := 0, 0
	for _, item := range items {
		if item.Type == models.ItemTypePhoto {
			photos++
		} else {
			texts++
		}
	}
	return &models.Collection{
		ID:            1,
		Name:          f.name,
		Description:   f.description,
		PhotoCount:    photos,
		TextCardCount: texts,
		Items:         items,
	}, nil
}

func (f *fakeBackend) UpdateCollection(_ context.Context, _ uint, name, description string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.name = name
	f.description = description
	return nil
}

func (f *fakeBackend) AddItems(_ context.Context, _ uint, items []models.CollectionItem) error {
	if f.enterAdd != nil {
		f.enterAdd <- struct{}{}
		<-f.releaseAdd
	}
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeBackend) InsertItemsAt(_ context.Context, _ uint, position int, items []models.CollectionItem) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := InsertAt(f.items, position, items)
	if err != nil {
		return err
	}
	f.items = out
	return nil
}

func (f *fakeBackend) UpdateTextCardAt(_ context.Context, _ uint, position int, card models.CollectionTextCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[position].TextCard = &card
	return nil
}

func (f *fakeBackend) DeleteItemAt(_ context.Context, _ uint, position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	out, err := DeleteAt(f.items, position)
	if err != nil {
		return err
	}
	f.items = out
	return nil
}

func (f *fakeBackend) ReorderItems(_ context.Context, _ uint, items []models.CollectionItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
	return nil
}

func (f *fakeBackend) ToggleItemVisibility(_ context.Context, _ uint, position int, visible bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if position == f.failToggleAt {
		return errors.New("backend unavailable")
	}
	f.items[position].Visible = visible
	return nil
}

func (f *fakeBackend) GetPhoto(_ context.Context, hothash string) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photoCalls++
	if f.photoErr != nil {
		return nil, f.photoErr
	}
	return &models.Photo{Hothash: hothash, Filename: hothash + ".jpg"}, nil
}

func newTestEditor(f *fakeBackend) (*Editor, *photocache.Cache) {
	cache := photocache.New()
	return NewEditor(1, f, f, cache), cache
}

func TestLoadPrewarmsPhotoCache(t *testing.T) {
	backend := newFakeBackend(
		models.NewPhotoItem("aaa"),
		models.NewTextItem(models.CollectionTextCard{Title: "Intro"}),
		models.NewPhotoItem("bbb"),
	)
	editor, cache := newTestEditor(backend)

	require.NoError(t, editor.Load(context.Background()))

	assert.Equal(t, StateReady, editor.State())
	assert.True(t, cache.Has("aaa"))
	assert.True(t, cache.Has("bbb"))
	assert.Equal(t, Progress{Loaded: 2, Total: 2}, editor.Progress())
	assert.Equal(t, 2, backend.photoCalls)
}

func TestLoadSkipsAlreadyCachedPhotos(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"), models.NewPhotoItem("bbb"))
	editor, cache := newTestEditor(backend)
	cache.Put(models.Photo{Hothash: "aaa"})

	require.NoError(t, editor.Load(context.Background()))

	assert.Equal(t, 1, backend.photoCalls)
	assert.Equal(t, Progress{Loaded: 2, Total: 2}, editor.Progress())
}

func TestLoadToleratesPhotoFetchFailure(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	backend.photoErr = errors.New("gone")
	editor, cache := newTestEditor(backend)

	require.NoError(t, editor.Load(context.Background()))

	assert.Equal(t, StateReady, editor.State())
	assert.False(t, cache.Has("aaa"))
}

func TestEveryMutationReloadsCanonicalState(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"), models.NewPhotoItem("bbb"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	calls := backend.getCalls
	require.NoError(t, editor.DeleteItem(context.Background(), 0))
	assert.Equal(t, calls+1, backend.getCalls)

	items := editor.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "bbb", items[0].PhotoHothash)
}

func TestFailedMutationStillReloads(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	backend.insertErr = errors.New("backend rejected it")
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	calls := backend.getCalls
	err := editor.InsertPhotos(context.Background(), []string{"bbb"})
	require.Error(t, err)

	assert.Equal(t, calls+1, backend.getCalls)
	assert.Equal(t, StateReady, editor.State())
	assert.Len(t, editor.Items(), 1)
}

func TestInsertAppendsWithoutCursor(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.InsertPhotos(context.Background(), []string{"bbb", "ccc"}))

	items := editor.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "bbb", items[1].PhotoHothash)
	assert.Equal(t, "ccc", items[2].PhotoHothash)
}

func TestInsertAtCursorClearsCursorOnSuccess(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"), models.NewPhotoItem("bbb"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))
	require.NoError(t, editor.SetCursor(1))

	require.NoError(t, editor.InsertPhotos(context.Background(), []string{"xxx"}))

	items := editor.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "xxx", items[1].PhotoHothash)
	assert.False(t, editor.Cursor().Set, "cursor must reset to append mode")
}

func TestInsertFailurePreservesCursor(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	backend.insertErr = errors.New("nope")
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))
	require.NoError(t, editor.SetCursor(1))

	require.Error(t, editor.InsertPhotos(context.Background(), []string{"bbb"}))

	cursor := editor.Cursor()
	assert.True(t, cursor.Set, "failed insert must keep the cursor for a retry")
	assert.Equal(t, 1, cursor.Index)
}

func TestInsertTextCardValidatesBeforeNetwork(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))
	calls := backend.getCalls

	err := editor.InsertTextCard(context.Background(), models.CollectionTextCard{Title: ""})

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, calls, backend.getCalls, "validation failure must not hit the network")
	assert.Len(t, editor.Items(), 1)
}

func TestRenameValidatesBeforeNetwork(t *testing.T) {
	backend := newFakeBackend()
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	err := editor.Rename(context.Background(), "   ", "desc")

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, backend.updateCalls)
}

func TestRename(t *testing.T) {
	backend := newFakeBackend()
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.Rename(context.Background(), "Vinterferie", "Bilder fra fjellet"))

	snap := editor.Snapshot()
	assert.Equal(t, "Vinterferie", snap.Collection.Name)
	assert.Equal(t, "Bilder fra fjellet", snap.Collection.Description)
}

func TestConcurrentMutationIsRejected(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	backend.enterAdd = make(chan struct{})
	backend.releaseAdd = make(chan struct{})
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- editor.InsertPhotos(context.Background(), []string{"bbb"})
	}()

	<-backend.enterAdd
	err := editor.DeleteItem(context.Background(), 0)
	assert.ErrorIs(t, err, ErrEditorBusy)

	close(backend.releaseAdd)
	require.NoError(t, <-done)
	assert.Len(t, editor.Items(), 2)
}

func TestBulkVisibilityReportsPartialFailure(t *testing.T) {
	backend := newFakeBackend(
		models.NewPhotoItem("aaa"),
		models.NewPhotoItem("bbb"),
		models.NewPhotoItem("ccc"),
	)
	backend.failToggleAt = 1
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	err := editor.HideAll(context.Background())

	var bulkErr *BulkVisibilityError
	require.ErrorAs(t, err, &bulkErr)
	assert.Equal(t, 1, bulkErr.Applied)
	assert.Equal(t, 1, bulkErr.Position)

	// The applied toggle is kept, not rolled back, and the reload shows it.
	items := editor.Items()
	assert.False(t, items[0].Visible)
	assert.True(t, items[1].Visible)
	assert.True(t, items[2].Visible)
	assert.Equal(t, StateReady, editor.State())
}

func TestShowAllSkipsAlreadyVisible(t *testing.T) {
	items := []models.CollectionItem{
		models.NewPhotoItem("aaa"),
		models.NewPhotoItem("bbb"),
	}
	items[1].Visible = false
	backend := newFakeBackend(items...)
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.ShowAll(context.Background()))

	for _, item := range editor.Items() {
		assert.True(t, item.Visible)
	}
}

func TestMoveItemPersistsWholeOrder(t *testing.T) {
	backend := newFakeBackend(
		models.NewPhotoItem("aaa"),
		models.NewPhotoItem("bbb"),
		models.NewPhotoItem("ccc"),
	)
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.MoveItem(context.Background(), 2, 0))

	items := editor.Items()
	assert.Equal(t, "ccc", items[0].PhotoHothash)
	assert.Equal(t, "aaa", items[1].PhotoHothash)
}

func TestReverseOrder(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"), models.NewPhotoItem("bbb"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.ReverseOrder(context.Background()))

	items := editor.Items()
	assert.Equal(t, "bbb", items[0].PhotoHothash)
	assert.Equal(t, "aaa", items[1].PhotoHothash)
}

func TestDeleteOutOfRangeNeverReachesBackend(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	err := editor.DeleteItem(context.Background(), 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Len(t, editor.Items(), 1)
}

func TestSetCursorBounds(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"), models.NewPhotoItem("bbb"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	assert.NoError(t, editor.SetCursor(0))
	assert.NoError(t, editor.SetCursor(2), "index == item count means append at end")
	assert.ErrorIs(t, editor.SetCursor(3), ErrIndexOutOfRange)
	assert.ErrorIs(t, editor.SetCursor(-1), ErrIndexOutOfRange)

	editor.ClearCursor()
	assert.False(t, editor.Cursor().Set)
}

func TestUpdateTextCardRequiresTextItem(t *testing.T) {
	backend := newFakeBackend(models.NewPhotoItem("aaa"))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	err := editor.UpdateTextCard(context.Background(), 0, models.CollectionTextCard{Title: "T"})

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateTextCard(t *testing.T) {
	backend := newFakeBackend(models.NewTextItem(models.CollectionTextCard{Title: "Gammel"}))
	editor, _ := newTestEditor(backend)
	require.NoError(t, editor.Load(context.Background()))

	require.NoError(t, editor.UpdateTextCard(context.Background(), 0, models.CollectionTextCard{Title: "Ny", Body: "Tekst"}))

	items := editor.Items()
	require.NotNil(t, items[0].TextCard)
	assert.Equal(t, "Ny", items[0].TextCard.Title)
}

func TestRegistryReturnsSameEditor(t *testing.T) {
	backend := newFakeBackend()
	registry := NewRegistry(backend, backend, photocache.New())

	a := registry.Get(7)
	b := registry.Get(7)
	assert.Same(t, a, b)

	registry.Drop(7)
	c := registry.Get(7)
	assert.NotSame(t, a, c)
}
