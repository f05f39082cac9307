package controllers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"

	"github.com/trollfjell/imalink-web/app/models"
	"github.com/trollfjell/imalink-web/internal/pkg/constants"
	"github.com/trollfjell/imalink-web/internal/pkg/metrics/counter"
	"github.com/trollfjell/imalink-web/internal/pkg/middleware"
	"github.com/trollfjell/imalink-web/internal/pkg/photocache"
	"github.com/trollfjell/imalink-web/internal/pkg/viewmodel"
)

// HandlePhotoGrid renders the paged photo grid. The first visit (or any
// visit with search parameters in the query) starts a fresh search;
// otherwise the already-loaded pages are shown as they are.
func HandlePhotoGrid(c *fiber.Ctx) error {
	params := parseSearchParams(c)
	if galleryLoader.Loaded() == 0 || len(c.Request().URI().QueryString()) > 0 {
		if err := galleryLoader.Search(c.Context(), params); err != nil {
			log.Warnf("[Photos] search failed: %v", err)
			flash.WithError(c, fiber.Map{"message": "Søket feilet, prøv igjen."})
		}
	}

	size := photoCache.DisplaySize()
	if s, ok := c.Locals(middleware.DisplaySizeKey).(string); ok && photocache.ValidDisplaySize(s) {
		size = photocache.DisplaySize(s)
		photoCache.SetDisplaySize(size)
	}
	config := photocache.DisplayConfigs[size]

	hashes := galleryLoader.Hashes()
	cards := make([]viewmodel.PhotoCard, 0, len(hashes))
	for _, h := range hashes {
		cards = append(cards, viewmodel.NewPhotoCard(photoCache, h, apiClient.HotPreviewURL(h)))
	}

	return c.Render("photos", fiber.Map{
		"Page":        "photos",
		"IsDev":       isDev(c),
		"Cards":       cards,
		"Loaded":      galleryLoader.Loaded(),
		"Total":       galleryLoader.Total(),
		"HasMore":     galleryLoader.HasMore(),
		"DisplaySize": string(size),
		"Columns":     config.Columns,
		"ShowMeta":    config.ShowMetadata,
		"ShowTags":    config.ShowTags,
		"ShowDate":    config.ShowDate,
		"Flash":       flash.Get(c),
	}, "layouts/main")
}

// HandleDisplaySize switches the grid density and remembers it in the
// session.
func HandleDisplaySize(c *fiber.Ctx) error {
	size := c.FormValue("size")
	if !photocache.ValidDisplaySize(size) {
		flash.WithError(c, fiber.Map{"message": "Ukjent visningsstørrelse."})
		return c.Redirect(constants.PhotosRoute)
	}

	photoCache.SetDisplaySize(photocache.DisplaySize(size))
	if err := middleware.SaveDisplaySize(c, size); err != nil {
		log.Warnf("[Photos] saving display size failed: %v", err)
	}
	return c.Redirect(constants.PhotosRoute)
}

// HandlePhotoLoadMore appends the next page to the current result set.
func HandlePhotoLoadMore(c *fiber.Ctx) error {
	if err := galleryLoader.LoadMore(c.Context()); err != nil {
		return jsonError(c, err)
	}
	return c.JSON(loadStatus())
}

// HandlePhotoLoadAll starts loading every remaining page in the
// background. Clients poll HandlePhotoLoadStatus and may cancel.
func HandlePhotoLoadAll(c *fiber.Ctx) error {
	// Detached from the request context: the load outlives this request
	// and is observed via the status endpoint.
	go func() {
		if err := galleryLoader.LoadAll(context.Background()); err != nil {
			log.Warnf("[Photos] load-all failed: %v", err)
		}
	}()
	return c.Status(fiber.StatusAccepted).JSON(loadStatus())
}

// HandlePhotoLoadCancel stops a running load-all after the page that is
// currently in flight.
func HandlePhotoLoadCancel(c *fiber.Ctx) error {
	galleryLoader.CancelLoadAll()
	return c.JSON(loadStatus())
}

// HandlePhotoLoadStatus reports paging progress.
func HandlePhotoLoadStatus(c *fiber.Ctx) error {
	return c.JSON(loadStatus())
}

func loadStatus() fiber.Map {
	return fiber.Map{
		"loaded":   galleryLoader.Loaded(),
		"total":    galleryLoader.Total(),
		"has_more": galleryLoader.HasMore(),
	}
}

// HandlePhotoDetail renders one photo with its full metadata, fetching
// the record on a cache miss.
func HandlePhotoDetail(c *fiber.Ctx) error {
	hothash := c.Params("hothash")

	photo, ok := photoCache.Get(hothash)
	if !ok {
		fetched, err := apiClient.GetPhoto(c.Context(), hothash)
		if err != nil {
			return jsonError(c, err)
		}
		photoCache.Put(*fetched)
		photo = *fetched
	}

	if err := counter.AddPhotoView(hothash); err != nil {
		log.Warnf("[Photos] view counter failed: %v", err)
	}

	return c.Render("photo", fiber.Map{
		"Page":       "photos",
		"IsDev":      isDev(c),
		"Photo":      photo,
		"PreviewURL": apiClient.HotPreviewURL(hothash),
		"Flash":      flash.Get(c),
	}, "layouts/main")
}

// HandlePhotoUpdate merge-patches photo metadata and refreshes the
// cached record from the backend's response.
func HandlePhotoUpdate(c *fiber.Ctx) error {
	hothash := c.Params("hothash")

	var update models.PhotoUpdate
	if err := c.BodyParser(&update); err != nil {
		return jsonError(c, models.NewValidationError("invalid photo update payload"))
	}

	updated, err := apiClient.UpdatePhotoMetadata(c.Context(), hothash, update)
	if err != nil {
		return jsonError(c, err)
	}

	photoCache.Put(*updated)
	return c.JSON(updated)
}

// parseSearchParams reads filter values from the query string. Absent or
// malformed values simply drop the filter.
func parseSearchParams(c *fiber.Ctx) models.SearchParams {
	var params models.SearchParams

	if v, err := strconv.Atoi(c.Query("rating_min")); err == nil {
		params.RatingMin = &v
	}
	if v, err := strconv.Atoi(c.Query("rating_max")); err == nil {
		params.RatingMax = &v
	}
	if v, err := time.Parse("2006-01-02", c.Query("taken_from")); err == nil {
		params.TakenFrom = &v
	}
	if v, err := time.Parse("2006-01-02", c.Query("taken_to")); err == nil {
		params.TakenTo = &v
	}
	if v, err := strconv.ParseUint(c.Query("event_id"), 10, 32); err == nil {
		id := uint(v)
		params.EventID = &id
	}
	for _, raw := range strings.Split(c.Query("tag_ids"), ",") {
		if v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32); err == nil {
			params.TagIDs = append(params.TagIDs, uint(v))
		}
	}

	return params
}
