package controllers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/collection"
	"github.com/trollfjell/imalink-web/internal/pkg/constants"
	"github.com/trollfjell/imalink-web/internal/pkg/metrics/counter"
	"github.com/trollfjell/imalink-web/internal/pkg/viewmodel"
)

// HandleCollectionList renders the collection overview.
func HandleCollectionList(c *fiber.Ctx) error {
	collections, err := apiClient.ListCollections(c.Context())
	if err != nil {
		log.Errorf("[Collections] list failed: %v", err)
		flash.WithError(c, fiber.Map{"message": "Kunne ikke hente samlingene."})
		collections = nil
	}

	views, err := counter.GetAllCollectionViews()
	if err != nil {
		log.Warnf("[Collections] view counters unavailable: %v", err)
	}

	cards := make([]viewmodel.CollectionCard, 0, len(collections))
	for _, col := range collections {
		cards = append(cards, viewmodel.NewCollectionCard(col, views[col.ID]))
	}

	return c.Render("collections", fiber.Map{
		"Page":  "collections",
		"IsDev": isDev(c),
		"Cards": cards,
		"Flash": flash.Get(c),
	}, "layouts/main")
}

// HandleCollectionCreate creates an empty collection from the form.
func HandleCollectionCreate(c *fiber.Ctx) error {
	col := models.Collection{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
	}
	if err := col.Validate(); err != nil {
		flash.WithError(c, fiber.Map{"message": err.Error()})
		return c.Redirect(constants.CollectionsRoute)
	}

	created, err := apiClient.CreateCollection(c.Context(), col.Name, col.Description)
	if err != nil {
		log.Errorf("[Collections] create failed: %v", err)
		flash.WithError(c, fiber.Map{"message": "Kunne ikke opprette samlingen."})
		return c.Redirect(constants.CollectionsRoute)
	}

	flash.WithSuccess(c, fiber.Map{"message": "Samlingen ble opprettet."})
	return c.Redirect(collectionPath(created.ID))
}

// HandleCollectionPage renders the editor for one collection. A fresh or
// previously failed editor starts loading in the background; the page
// then polls the state endpoint until the editor is ready.
func HandleCollectionPage(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect(constants.CollectionsRoute)
	}

	if err := counter.AddCollectionView(id); err != nil {
		log.Warnf("[Collections] view counter failed: %v", err)
	}

	editor := editors.Get(id)
	switch editor.State() {
	case collection.StateIdle, collection.StateError:
		go func() {
			if err := editor.Load(context.Background()); err != nil {
				log.Errorf("[Collection %d] load failed: %v", id, err)
			}
		}()
	}

	snap := editor.Snapshot()
	items := viewmodel.NewItemViews(photoCache, snap.Collection.Items, apiClient.HotPreviewURL, snap.Cursor.Set, snap.Cursor.Index)
	views, _ := counter.GetCollectionViews(id)

	return c.Render("collection", fiber.Map{
		"Views":      views,
		"Page":       "collections",
		"IsDev":      isDev(c),
		"ID":         id,
		"State":      snap.State,
		"Collection": snap.Collection,
		"Items":      items,
		"Cursor":     snap.Cursor,
		"Progress":   snap.Progress,
		"Flash":      flash.Get(c),
	}, "layouts/main")
}

// HandleCollectionRename renames a collection via the editor so the
// page state stays canonical.
func HandleCollectionRename(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect(constants.CollectionsRoute)
	}

	err = editors.Get(id).Rename(c.Context(), c.FormValue("name"), c.FormValue("description"))
	if err != nil {
		flash.WithError(c, fiber.Map{"message": err.Error()})
	} else {
		flash.WithSuccess(c, fiber.Map{"message": "Samlingen ble oppdatert."})
	}
	return c.Redirect(collectionPath(id))
}

// HandleCollectionDelete deletes a collection. Photos referenced by its
// items are untouched.
func HandleCollectionDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Redirect(constants.CollectionsRoute)
	}

	if err := apiClient.DeleteCollection(c.Context(), id); err != nil {
		log.Errorf("[Collection %d] delete failed: %v", id, err)
		flash.WithError(c, fiber.Map{"message": "Kunne ikke slette samlingen."})
		return c.Redirect(collectionPath(id))
	}

	editors.Drop(id)
	flash.WithSuccess(c, fiber.Map{"message": "Samlingen ble slettet."})
	return c.Redirect(constants.CollectionsRoute)
}

func collectionPath(id uint) string {
	return fmt.Sprintf("/collections/%d", id)
}
