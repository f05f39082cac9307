package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/internal/pkg/collection"
	"github.com/trollfjell/imalink-web/internal/pkg/slideshow"
)

// HandleExportSlideshow builds the offline slideshow bundle and streams
// it as a download. The editor must be ready; the bundle is built from
// its current canonical item list.
func HandleExportSlideshow(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	editor := editors.Get(id)
	if editor.State() != collection.StateReady {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "collection is not loaded yet",
		})
	}

	snap := editor.Snapshot()
	bundle, report, err := exporter.Export(c.Context(), slideshow.Options{
		CollectionID: id,
		Name:         snap.Collection.Name,
		Description:  snap.Collection.Description,
		Items:        snap.Collection.Items,
	})
	if err != nil {
		return jsonError(c, err)
	}

	filename := exportFilename(snap.Collection.Name)
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	// Lets the frontend tell a complete bundle from a partial one.
	c.Set("X-Export-Failed-Photos", strconv.Itoa(len(report.Failures)))
	return c.Send(bundle)
}

// HandleExportPublish builds the bundle and uploads it to the bundle
// store instead of streaming it to the browser.
func HandleExportPublish(c *fiber.Ctx) error {
	if bundles == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "bundle store is not configured",
		})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	editor := editors.Get(id)
	if editor.State() != collection.StateReady {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "collection is not loaded yet",
		})
	}

	snap := editor.Snapshot()
	bundle, report, err := exporter.Export(c.Context(), slideshow.Options{
		CollectionID: id,
		Name:         snap.Collection.Name,
		Description:  snap.Collection.Description,
		Items:        snap.Collection.Items,
	})
	if err != nil {
		return jsonError(c, err)
	}

	result, err := bundles.Publish(c.Context(), id, bundle)
	if err != nil {
		log.Errorf("[Export %d] publish failed: %v", id, err)
		return jsonError(c, err)
	}

	return c.JSON(fiber.Map{
		"object_key":    result.ObjectKey,
		"size":          result.Size,
		"slides":        report.SlideCount,
		"failed_photos": len(report.Failures),
	})
}

// exportFilename derives a safe zip name from the collection name.
func exportFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "samling"
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, name)
	if clean == "" {
		clean = "samling"
	}
	return fmt.Sprintf("%s-lysbildevisning.zip", strings.ToLower(clean))
}
