package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trollfjell/imalink-web/app/models"
)

func testItems(hashes ...string) []models.CollectionItem {
	items := make([]models.CollectionItem, 0, len(hashes))
	for _, h := range hashes {
		items = append(items, models.NewPhotoItem(h))
	}
	return items
}

func hashesOf(items []models.CollectionItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.PhotoHothash)
	}
	return out
}

func TestReorderMovesForward(t *testing.T) {
	items := testItems("a", "b", "c", "d")

	got, err := Reorder(items, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a", "d"}, hashesOf(got))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c", "d"}, hashesOf(items))
}

func TestReorderMovesBackward(t *testing.T) {
	items := testItems("a", "b", "c", "d")

	got, err := Reorder(items, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "d", "b", "c"}, hashesOf(got))
}

func TestReorderSameIndexIsNoOp(t *testing.T) {
	items := testItems("a", "b", "c")

	got, err := Reorder(items, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, hashesOf(items), hashesOf(got))
}

func TestReorderRejectsOutOfRange(t *testing.T) {
	items := testItems("a", "b")

	_, err := Reorder(items, -1, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Reorder(items, 0, 2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestInsertAtSplicesBatchContiguously(t *testing.T) {
	items := testItems("a", "b", "c")
	batch := testItems("x", "y")

	got, err := InsertAt(items, 1, batch)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "x", "y", "b", "c"}, hashesOf(got))
}

func TestInsertAtEndAppends(t *testing.T) {
	items := testItems("a", "b")

	got, err := InsertAt(items, 2, testItems("c"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, hashesOf(got))
}

func TestInsertAtIntoEmptyList(t *testing.T) {
	got, err := InsertAt(nil, 0, testItems("a"))
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, hashesOf(got))
}

func TestInsertAtRejectsOutOfRange(t *testing.T) {
	items := testItems("a")

	_, err := InsertAt(items, 2, testItems("x"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = InsertAt(items, -1, testItems("x"))
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeleteAtClosesGap(t *testing.T) {
	items := testItems("a", "b", "c")

	got, err := DeleteAt(items, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, hashesOf(got))
	assert.Len(t, items, 3)
}

func TestDeleteAtRejectsOutOfRange(t *testing.T) {
	_, err := DeleteAt(testItems("a"), 1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = DeleteAt(nil, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSetVisibilityFlipsOnlyOneItem(t *testing.T) {
	items := testItems("a", "b", "c")

	got, err := SetVisibility(items, 1, false)
	require.NoError(t, err)

	assert.True(t, got[0].Visible)
	assert.False(t, got[1].Visible)
	assert.True(t, got[2].Visible)
	assert.Equal(t, hashesOf(items), hashesOf(got))
	// input untouched
	assert.True(t, items[1].Visible)
}

func TestReverse(t *testing.T) {
	items := testItems("a", "b", "c")

	got := Reverse(items)

	assert.Equal(t, []string{"c", "b", "a"}, hashesOf(got))
	assert.Empty(t, Reverse(nil))
}

func TestVisibleItemsPreservesOrder(t *testing.T) {
	items := testItems("a", "b", "c", "d")
	items[1].Visible = false
	items[3].Visible = false

	got := VisibleItems(items)

	assert.Equal(t, []string{"a", "c"}, hashesOf(got))
}

// A drag from the visible grid onto another visible position must be
// translated against the full list before it reaches Reorder; this pins
// down that Reorder itself is position-literal.
func TestReorderWithHiddenItemsIsPositionLiteral(t *testing.T) {
	items := testItems("a", "hidden", "b", "c")
	items[1].Visible = false

	got, err := Reorder(items, 0, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"hidden", "b", "a", "c"}, hashesOf(got))
}

func TestMixedItemTypesSurviveTransforms(t *testing.T) {
	items := []models.CollectionItem{
		models.NewPhotoItem("a"),
		models.NewTextItem(models.CollectionTextCard{Title: "Kapittel 1"}),
		models.NewPhotoItem("b"),
	}

	got, err := DeleteAt(items, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ItemTypeText, got[0].Type)
	require.NotNil(t, got[0].TextCard)
	assert.Equal(t, "Kapittel 1", got[0].TextCard.Title)

	got, err = InsertAt(got, 1, testItems("c"))
	require.NoError(t, err)
	assert.Equal(t, models.ItemTypeText, got[0].Type)
	assert.Equal(t, "c", got[1].PhotoHothash)
	assert.Equal(t, "b", got[2].PhotoHothash)
}
