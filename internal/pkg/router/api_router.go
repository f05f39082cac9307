package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/trollfjell/imalink-web/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// Photo grid paging
	photos := api.Group("/photos")
	photos.Get("/status", controllers.HandlePhotoLoadStatus)
	photos.Post("/load-more", controllers.HandlePhotoLoadMore)
	photos.Post("/load-all", controllers.HandlePhotoLoadAll)
	photos.Post("/load-all/cancel", controllers.HandlePhotoLoadCancel)
	photos.Patch("/:hothash", controllers.HandlePhotoUpdate)

	// Collection editor
	col := api.Group("/collections/:id")
	col.Get("/state", controllers.HandleEditorState)
	col.Put("/cursor", controllers.HandleSetCursor)
	col.Delete("/cursor", controllers.HandleClearCursor)
	col.Post("/items/photos", controllers.HandleInsertPhotos)
	col.Post("/items/text", controllers.HandleInsertTextCard)
	col.Put("/items/move", controllers.HandleMoveItem)
	col.Post("/items/reverse", controllers.HandleReverseOrder)
	col.Post("/items/show-all", controllers.HandleShowAll)
	col.Post("/items/hide-all", controllers.HandleHideAll)
	col.Put("/items/:index/text", controllers.HandleUpdateTextCard)
	col.Put("/items/:index/visibility", controllers.HandleToggleVisibility)
	col.Delete("/items/:index", controllers.HandleDeleteItem)

	// Slideshow publishing
	col.Post("/export/publish", controllers.HandleExportPublish)

	// Author and event catalogs
	authors := api.Group("/authors")
	authors.Get("/", controllers.HandleAuthorList)
	authors.Post("/", controllers.HandleAuthorCreate)
	authors.Put("/:id", controllers.HandleAuthorUpdate)
	authors.Delete("/:id", controllers.HandleAuthorDelete)

	events := api.Group("/events")
	events.Get("/", controllers.HandleEventList)
	events.Post("/", controllers.HandleEventCreate)
	events.Get("/:id", controllers.HandleEventGet)
	events.Put("/:id", controllers.HandleEventUpdate)
	events.Delete("/:id", controllers.HandleEventDelete)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
