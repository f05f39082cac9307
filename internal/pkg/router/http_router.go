package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/trollfjell/imalink-web/app/controllers"
	"github.com/trollfjell/imalink-web/internal/pkg/bundlestore"
	"github.com/trollfjell/imalink-web/internal/pkg/imalink"
	"github.com/trollfjell/imalink-web/internal/pkg/middleware"
	"github.com/trollfjell/imalink-web/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply AppContext middleware globally as first middleware
	app.Use(middleware.AppContext)

	// Wire the shared application state the controllers work on
	controllers.Initialize(imalink.NewClientFromEnv(), setupBundleStore())

	h.registerRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func (h HttpRouter) registerRoutes(app *fiber.App) {
	app.Get("/", controllers.HandleHome)

	// Photo grid
	app.Get("/photos", controllers.HandlePhotoGrid)
	app.Post("/photos/display-size", controllers.HandleDisplaySize)
	app.Get("/photos/:hothash", controllers.HandlePhotoDetail)

	// Collections
	app.Get("/collections", controllers.HandleCollectionList)
	app.Post("/collections", controllers.HandleCollectionCreate)
	app.Get("/collections/:id", controllers.HandleCollectionPage)
	app.Post("/collections/:id/rename", controllers.HandleCollectionRename)
	app.Post("/collections/:id/delete", controllers.HandleCollectionDelete)

	// Slideshow bundle download
	app.Get("/collections/:id/export", controllers.HandleExportSlideshow)
}

// setupBundleStore builds the optional S3 publisher. A disabled or
// misconfigured store only disables publishing; the app still runs.
func setupBundleStore() *bundlestore.Store {
	cfg, err := bundlestore.LoadConfig()
	if err != nil {
		log.Warnf("[Router] bundle store configuration invalid: %v", err)
		return nil
	}
	if !cfg.IsEnabled() {
		return nil
	}

	store, err := bundlestore.NewStore(cfg)
	if err != nil {
		log.Warnf("[Router] bundle store unavailable: %v", err)
		return nil
	}
	return store
}
