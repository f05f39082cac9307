// Package collection implements ordered collection editing: pure
// transforms over the item sequence and the editor that persists them
// against the remote API.
package collection

import (
	"errors"
	"fmt"

	"github.com/trollfjell/imalink-web/app/models"
)

// ErrIndexOutOfRange is returned when a transform is handed an index
// outside the current sequence. Transforms never clamp: silent clamping
// would corrupt ordering invariants invisibly.
var ErrIndexOutOfRange = errors.New("collection: item index out of range")

func indexError(op string, index, length int) error {
	return fmt.Errorf("%s index %d with %d items: %w", op, index, length, ErrIndexOutOfRange)
}

// All transforms return a fresh slice and leave their input untouched, so
// a snapshot handed to a renderer stays valid while a new list is being
// persisted. The in-memory list is never the source of truth; every
// transform result is pushed to the backend immediately.

// Reorder removes the element at from and reinserts it at to. A no-op
// when the indices are equal.
func Reorder(items []models.CollectionItem, from, to int) ([]models.CollectionItem, error) {
	if from < 0 || from >= len(items) {
		return nil, indexError("reorder from", from, len(items))
	}
	if to < 0 || to >= len(items) {
		return nil, indexError("reorder to", to, len(items))
	}

	out := make([]models.CollectionItem, len(items))
	copy(out, items)
	if from == to {
		return out, nil
	}

	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]models.CollectionItem{moved}, out[to:]...)...)
	return out, nil
}

// InsertAt splices newItems in before index. index may equal len(items),
// which appends. The whole batch is inserted contiguously in its original
// relative order.
func InsertAt(items []models.CollectionItem, index int, newItems []models.CollectionItem) ([]models.CollectionItem, error) {
	if index < 0 || index > len(items) {
		return nil, indexError("insert at", index, len(items))
	}

	out := make([]models.CollectionItem, 0, len(items)+len(newItems))
	out = append(out, items[:index]...)
	out = append(out, newItems...)
	out = append(out, items[index:]...)
	return out, nil
}

// DeleteAt removes the element at index, closing the gap.
func DeleteAt(items []models.CollectionItem, index int) ([]models.CollectionItem, error) {
	if index < 0 || index >= len(items) {
		return nil, indexError("delete at", index, len(items))
	}

	out := make([]models.CollectionItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	out = append(out, items[index+1:]...)
	return out, nil
}

// SetVisibility flips the visibility flag of the element at index and
// nothing else; order and all other elements are untouched.
func SetVisibility(items []models.CollectionItem, index int, visible bool) ([]models.CollectionItem, error) {
	if index < 0 || index >= len(items) {
		return nil, indexError("set visibility at", index, len(items))
	}

	out := make([]models.CollectionItem, len(items))
	copy(out, items)
	out[index].Visible = visible
	return out, nil
}

// Reverse returns the sequence in reverse order. Used as a cheap bulk
// re-sort ("toggle sort order").
func Reverse(items []models.CollectionItem) []models.CollectionItem {
	out := make([]models.CollectionItem, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}

// VisibleItems returns only the items whose visibility flag is set,
// preserving order.
func VisibleItems(items []models.CollectionItem) []models.CollectionItem {
	out := make([]models.CollectionItem, 0, len(items))
	for _, item := range items {
		if item.Visible {
			out = append(out, item)
		}
	}
	return out
}
