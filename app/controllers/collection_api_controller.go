package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/collection"
)

// The JSON editor API. Every mutation goes through the per-collection
// editor, which serializes writes and reloads the canonical state after
// each one; handlers only translate HTTP to editor calls.

func editorFromParams(c *fiber.Ctx) (*collection.Editor, error) {
	id, err := parseIDParam(c)
	if err != nil {
		return nil, err
	}
	return editors.Get(id), nil
}

func editorState(c *fiber.Ctx, e *collection.Editor) error {
	snap := e.Snapshot()
	return c.JSON(fiber.Map{
		"state": snap.State,
		"cursor": fiber.Map{
			"set":   snap.Cursor.Set,
			"index": snap.Cursor.Index,
		},
		"progress": fiber.Map{
			"loaded": snap.Progress.Loaded,
			"total":  snap.Progress.Total,
		},
		"item_count":      len(snap.Collection.Items),
		"photo_count":     snap.Collection.PhotoCount,
		"text_card_count": snap.Collection.TextCardCount,
	})
}

// HandleEditorState reports the editor state machine, cursor and
// pre-warm progress. Polled by the collection page while loading.
func HandleEditorState(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleInsertPhotos inserts photo items at the cursor, or appends when
// no cursor is set.
func HandleInsertPhotos(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	var body struct {
		Hothashes []string `json:"hothashes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, models.NewValidationError("invalid insert payload"))
	}

	// The gallery can target a collection that was never opened; load it
	// on demand so the append still lands.
	if e.State() == collection.StateIdle {
		if err := e.Load(c.Context()); err != nil {
			return jsonError(c, err)
		}
	}

	if err := e.InsertPhotos(c.Context(), body.Hothashes); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleInsertTextCard inserts one text card at the cursor.
func HandleInsertTextCard(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	var card models.CollectionTextCard
	if err := c.BodyParser(&card); err != nil {
		return jsonError(c, models.NewValidationError("invalid text card payload"))
	}

	if err := e.InsertTextCard(c.Context(), card); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleUpdateTextCard replaces the text card at the given index.
func HandleUpdateTextCard(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	var card models.CollectionTextCard
	if err := c.BodyParser(&card); err != nil {
		return jsonError(c, models.NewValidationError("invalid text card payload"))
	}

	if err := e.UpdateTextCard(c.Context(), index, card); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleDeleteItem removes the item at the given index.
func HandleDeleteItem(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	if err := e.DeleteItem(c.Context(), index); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleToggleVisibility sets the visibility flag of one item.
func HandleToggleVisibility(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}
	index, err := parseIndexParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	var body struct {
		Visible bool `json:"visible"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, models.NewValidationError("invalid visibility payload"))
	}

	if err := e.ToggleVisibility(c.Context(), index, body.Visible); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleShowAll makes every item visible. A mid-sequence failure leaves
// the already-applied toggles in place and is reported as 502 with the
// partial counts.
func HandleShowAll(c *fiber.Ctx) error {
	return bulkVisibility(c, true)
}

// HandleHideAll hides every item, with the same partial-failure
// semantics as HandleShowAll.
func HandleHideAll(c *fiber.Ctx) error {
	return bulkVisibility(c, false)
}

func bulkVisibility(c *fiber.Ctx, visible bool) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	op := e.HideAll
	if visible {
		op = e.ShowAll
	}

	var bulkErr *collection.BulkVisibilityError
	switch err := op(c.Context()); {
	case err == nil:
		return editorState(c, e)
	case errors.As(err, &bulkErr):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   bulkErr.Error(),
			"applied": bulkErr.Applied,
			"stopped": bulkErr.Position,
		})
	default:
		return jsonError(c, err)
	}
}

// HandleMoveItem moves one item to a new position and persists the
// resulting order in a single call.
func HandleMoveItem(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	var body struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, models.NewValidationError("invalid move payload"))
	}

	if err := e.MoveItem(c.Context(), body.From, body.To); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleReverseOrder reverses the item sequence.
func HandleReverseOrder(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	if err := e.ReverseOrder(c.Context()); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleSetCursor places the insertion point.
func HandleSetCursor(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}

	var body struct {
		Index int `json:"index"`
	}
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, models.NewValidationError("invalid cursor payload"))
	}

	if err := e.SetCursor(body.Index); err != nil {
		return jsonError(c, err)
	}
	return editorState(c, e)
}

// HandleClearCursor returns the editor to append mode.
func HandleClearCursor(c *fiber.Ctx) error {
	e, err := editorFromParams(c)
	if err != nil {
		return jsonError(c, err)
	}
	e.ClearCursor()
	return editorState(c, e)
}
