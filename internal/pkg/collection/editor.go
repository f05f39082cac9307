package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
)

// API is the subset of the remote collection operations the editor
// persists through. *imalink.Client satisfies it.
type API interface {
	GetCollection(ctx context.Context, id uint) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id uint, name, description string) error
	AddItems(ctx context.Context, id uint, items []models.CollectionItem) error
	InsertItemsAt(ctx context.Context, id uint, position int, items []models.CollectionItem) error
	UpdateTextCardAt(ctx context.Context, id uint, position int, card models.CollectionTextCard) error
	DeleteItemAt(ctx context.Context, id uint, position int) error
	ReorderItems(ctx context.Context, id uint, items []models.CollectionItem) error
	ToggleItemVisibility(ctx context.Context, id uint, position int, visible bool) error
}

// PhotoLoader fetches photo records for the pre-warm pass.
type PhotoLoader interface {
	GetPhoto(ctx context.Context, hothash string) (*models.Photo, error)
}

// State of the editor. Mutations are accepted only in StateReady.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateMutating
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateMutating:
		return "mutating"
	case StateError:
		return "error"
	}
	return "unknown"
}

// ErrEditorBusy is returned when a mutation arrives while another one is
// in flight. Positional indices are only meaningful relative to a known
// prior state, so concurrent positional writes must never interleave.
var ErrEditorBusy = errors.New("collection: another operation is in progress")

// Cursor is the transient insertion point: unset means append mode, set
// means "insert before the item at Index" (Index == item count appends).
// Never persisted; cleared after each successful insertion.
type Cursor struct {
	Set   bool
	Index int
}

// Progress tracks the sequential photo pre-warm during Load.
type Progress struct {
	Loaded int
	Total  int
}

// BulkVisibilityError reports a show-all/hide-all run that failed part
// way through. The already-applied toggles are not rolled back; there is
// no transactional bulk endpoint.
type BulkVisibilityError struct {
	Applied  int
	Position int
	Err      error
}

func (e *BulkVisibilityError) Error() string {
	return fmt.Sprintf("collection: bulk visibility stopped at item %d after %d changes: %v", e.Position, e.Applied, e.Err)
}

func (e *BulkVisibilityError) Unwrap() error {
	return e.Err
}

// Editor drives all edits of one collection. Every mutation follows the
// same cycle: validate locally, apply the transform to a scratch copy,
// call the remote API, discard the local result and reload the canonical
// state. The round trip per edit is the price for never drifting from
// backend-derived counts and ordering.
type Editor struct {
	id     uint
	api    API
	photos PhotoLoader
	cache  *photocache.Cache

	mu       sync.Mutex
	state    State
	col      *models.Collection
	cursor   Cursor
	progress Progress
}

// NewEditor creates an editor for the given collection id. Call Load
// before anything else.
func NewEditor(id uint, api API, photos PhotoLoader, cache *photocache.Cache) *Editor {
	return &Editor{
		id:     id,
		api:    api,
		photos: photos,
		cache:  cache,
		state:  StateIdle,
	}
}

// ID returns the collection id this editor is bound to.
func (e *Editor) ID() uint {
	return e.id
}

// State returns the current editor state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Load fetches the collection and pre-warms the photo cache: one fetch
// per photo item, strictly sequential, progress bumped after each so the
// counter the UI polls is always meaningful.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.state == StateLoading || e.state == StateMutating {
		e.mu.Unlock()
		return ErrEditorBusy
	}
	e.state = StateLoading
	e.mu.Unlock()

	col, err := e.api.GetCollection(ctx, e.id)
	if err != nil {
		e.mu.Lock()
		e.state = StateError
		e.mu.Unlock()
		return err
	}

	hashes := photoHashes(col.Items)
	e.mu.Lock()
	e.col = col
	e.progress = Progress{Loaded: 0, Total: len(hashes)}
	e.mu.Unlock()

	for _, hothash := range hashes {
		if !e.cache.Has(hothash) {
			photo, perr := e.photos.GetPhoto(ctx, hothash)
			if perr != nil {
				// A miss stays a legal cache state; the grid renders a
				// placeholder until the record shows up.
				log.Warnf("[Collection %d] pre-warm of photo %s failed: %v", e.id, hothash, perr)
			} else {
				e.cache.Put(*photo)
			}
		}
		e.mu.Lock()
		e.progress.Loaded++
		e.mu.Unlock()
	}

	e.mu.Lock()
	e.state = StateReady
	e.mu.Unlock()
	return nil
}

// Progress returns the pre-warm progress of the current or last Load.
func (e *Editor) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.progress
}

func photoHashes(items []models.CollectionItem) []string {
	hashes := make([]string, 0, len(items))
	for _, item := range items {
		switch item.Type {
		case models.ItemTypePhoto:
			hashes = append(hashes, item.PhotoHothash)
		case models.ItemTypeText:
			// nothing to warm
		}
	}
	return hashes
}

// mutate serializes a mutation: it is rejected unless the editor is
// Ready, and the canonical state is reloaded afterwards no matter how
// the remote call went, so a failed write leaves the editor exactly at
// the true server state.
func (e *Editor) mutate(ctx context.Context, fn func(items []models.CollectionItem) error) error {
	e.mu.Lock()
	if e.state != StateReady {
		e.mu.Unlock()
		return ErrEditorBusy
	}
	items := e.itemsLocked()
	e.state = StateMutating
	e.mu.Unlock()

	mutErr := fn(items)

	// Best-effort reload; on failure the previous snapshot stays.
	col, reloadErr := e.api.GetCollection(ctx, e.id)
	if reloadErr != nil {
		log.Warnf("[Collection %d] reload after write failed: %v", e.id, reloadErr)
	}

	e.mu.Lock()
	if col != nil {
		e.col = col
	}
	e.state = StateReady
	e.mu.Unlock()

	if mutErr != nil {
		return mutErr
	}
	return reloadErr
}

func (e *Editor) itemsLocked() []models.CollectionItem {
	if e.col == nil {
		return nil
	}
	items := make([]models.CollectionItem, len(e.col.Items))
	copy(items, e.col.Items)
	return items
}

// Items returns a copy of the current item sequence.
func (e *Editor) Items() []models.CollectionItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itemsLocked()
}

// Rename validates locally and updates name/description. Validation
// failures never reach the network.
func (e *Editor) Rename(ctx context.Context, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewValidationError("collection name is required")
	}
	if len(name) > 255 {
		return models.NewValidationError("collection name must be at most 255 characters")
	}

	return e.mutate(ctx, func([]models.CollectionItem) error {
		return e.api.UpdateCollection(ctx, e.id, name, description)
	})
}

// InsertPhotos adds photo items built from the given fingerprints. With a
// cursor set the atomic positional insert endpoint is used, otherwise the
// batch is appended. The cursor is cleared on success and preserved on
// failure so the user can retry at the same spot.
func (e *Editor) InsertPhotos(ctx context.Context, hothashes []string) error {
	if len(hothashes) == 0 {
		return models.NewValidationError("no photos selected")
	}

	newItems := make([]models.CollectionItem, 0, len(hothashes))
	for _, h := range hothashes {
		if h == "" {
			return models.NewValidationError("photo item is missing a hothash")
		}
		newItems = append(newItems, models.NewPhotoItem(h))
	}

	return e.insertItems(ctx, newItems)
}

// InsertTextCard adds one text card, honoring the same cursor contract
// as InsertPhotos.
func (e *Editor) InsertTextCard(ctx context.Context, card models.CollectionTextCard) error {
	if err := card.Validate(); err != nil {
		return err
	}
	return e.insertItems(ctx, []models.CollectionItem{models.NewTextItem(card)})
}

func (e *Editor) insertItems(ctx context.Context, newItems []models.CollectionItem) error {
	e.mu.Lock()
	cursor := e.cursor
	e.mu.Unlock()

	err := e.mutate(ctx, func(items []models.CollectionItem) error {
		if cursor.Set {
			// The local splice validates the cursor against the current
			// length before anything goes over the wire.
			if _, terr := InsertAt(items, cursor.Index, newItems); terr != nil {
				return terr
			}
			return e.api.InsertItemsAt(ctx, e.id, cursor.Index, newItems)
		}
		return e.api.AddItems(ctx, e.id, newItems)
	})
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.cursor = Cursor{}
	e.mu.Unlock()
	return nil
}

// UpdateTextCard replaces the text card at index.
func (e *Editor) UpdateTextCard(ctx context.Context, index int, card models.CollectionTextCard) error {
	if err := card.Validate(); err != nil {
		return err
	}

	return e.mutate(ctx, func(items []models.CollectionItem) error {
		if index < 0 || index >= len(items) {
			return indexError("update text card at", index, len(items))
		}
		if items[index].Type != models.ItemTypeText {
			return models.NewValidationError(fmt.Sprintf("item %d is not a text card", index))
		}
		return e.api.UpdateTextCardAt(ctx, e.id, index, card)
	})
}

// DeleteItem removes the item at index. Confirmation is the caller's
// job; this is destructive.
func (e *Editor) DeleteItem(ctx context.Context, index int) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		if _, terr := DeleteAt(items, index); terr != nil {
			return terr
		}
		return e.api.DeleteItemAt(ctx, e.id, index)
	})
}

// ToggleVisibility sets the visibility flag of the item at index.
func (e *Editor) ToggleVisibility(ctx context.Context, index int, visible bool) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		if _, terr := SetVisibility(items, index, visible); terr != nil {
			return terr
		}
		return e.api.ToggleItemVisibility(ctx, e.id, index, visible)
	})
}

// ShowAll makes every item visible.
func (e *Editor) ShowAll(ctx context.Context) error {
	return e.setAllVisibility(ctx, true)
}

// HideAll hides every item.
func (e *Editor) HideAll(ctx context.Context) error {
	return e.setAllVisibility(ctx, false)
}

// setAllVisibility toggles every item whose flag differs from the
// target, one independent call per item. A mid-sequence failure leaves a
// partially applied state which is reported, not rolled back.
func (e *Editor) setAllVisibility(ctx context.Context, visible bool) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		applied := 0
		for i, item := range items {
			if item.Visible == visible {
				continue
			}
			if err := e.api.ToggleItemVisibility(ctx, e.id, i, visible); err != nil {
				return &BulkVisibilityError{Applied: applied, Position: i, Err: err}
			}
			applied++
		}
		return nil
	})
}

// MoveItem reorders one item by drag-and-drop semantics and persists the
// whole resulting order in a single call.
func (e *Editor) MoveItem(ctx context.Context, from, to int) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		reordered, terr := Reorder(items, from, to)
		if terr != nil {
			return terr
		}
		return e.api.ReorderItems(ctx, e.id, reordered)
	})
}

// ReorderAll replaces the whole item order in one call.
func (e *Editor) ReorderAll(ctx context.Context, newOrder []models.CollectionItem) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		if len(newOrder) != len(items) {
			return models.NewValidationError(
				fmt.Sprintf("new order has %d items, collection has %d", len(newOrder), len(items)))
		}
		return e.api.ReorderItems(ctx, e.id, newOrder)
	})
}

// ReverseOrder reverses the sequence, backing the "toggle sort order"
// button.
func (e *Editor) ReverseOrder(ctx context.Context) error {
	return e.mutate(ctx, func(items []models.CollectionItem) error {
		return e.api.ReorderItems(ctx, e.id, Reverse(items))
	})
}

// SetCursor places the insertion point before the item at index; index
// may equal the item count, which means append-at-end.
func (e *Editor) SetCursor(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	if e.col != nil {
		count = len(e.col.Items)
	}
	if index < 0 || index > count {
		return indexError("set cursor at", index, count)
	}
	e.cursor = Cursor{Set: true, Index: index}
	return nil
}

// ClearCursor returns to append mode.
func (e *Editor) ClearCursor() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = Cursor{}
}

// Cursor returns the current insertion point.
func (e *Editor) Cursor() Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Snapshot is a render-ready copy of the editor state.
type Snapshot struct {
	State      string
	Collection models.Collection
	Cursor     Cursor
	Progress   Progress
}

// Snapshot returns a consistent copy for rendering. The collection value
// is a copy; mutating it has no effect on the editor.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:    e.state.String(),
		Cursor:   e.cursor,
		Progress: e.progress,
	}
	if e.col != nil {
		snap.Collection = *e.col
		snap.Collection.Items = e.itemsLocked()
	}
	return snap
}
