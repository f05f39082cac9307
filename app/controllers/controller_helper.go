package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/bundlestore"
	"github.com/trollfjell/imalink-web/internal/pkg/collection"
	"github.com/trollfjell/imalink-web/internal/pkg/gallery"
	"github.com/trollfjell/imalink-web/internal/pkg/imalink"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
	"github.com/trollfjell/imalink-web/internal/pkg/slideshow"
)

var (
	apiClient     *imalink.Client
	photoCache    *photocache.Cache
	galleryLoader *gallery.Loader
	editors       *collection.Registry
	exporter      *slideshow.Exporter
	bundles       *bundlestore.Store // nil when the bundle store is disabled
)

// Initialize wires the shared application state the handlers work on.
// Called once from the router before any route is registered.
func Initialize(client *imalink.Client, store *bundlestore.Store) {
	apiClient = client
	photoCache = photocache.New()
	galleryLoader = gallery.NewLoader(client, photoCache, gallery.DefaultPageSize)
	editors = collection.NewRegistry(client, client, photoCache)
	exporter = slideshow.NewExporter(client, client.BaseURL())
	bundles = store
}

func isDev(c *fiber.Ctx) bool {
	if v, ok := c.Locals("is_dev").(bool); ok {
		return v
	}
	return false
}

func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("invalid id")
	}
	return uint(id), nil
}

func parseIndexParam(c *fiber.Ctx) (int, error) {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return 0, models.NewValidationError("invalid item index")
	}
	return index, nil
}

// jsonError maps domain errors onto HTTP status codes. Remote failures
// come back as 502 unless the backend rejected the request itself.
func jsonError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var validationErr *models.ValidationError
	var remoteErr *imalink.RemoteError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, collection.ErrIndexOutOfRange):
		status = fiber.StatusBadRequest
	case errors.Is(err, collection.ErrEditorBusy), errors.Is(err, gallery.ErrLoadInProgress):
		status = fiber.StatusConflict
	case errors.As(err, &remoteErr):
		status = fiber.StatusBadGateway
		if remoteErr.StatusCode >= 400 && remoteErr.StatusCode < 500 {
			status = remoteErr.StatusCode
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
