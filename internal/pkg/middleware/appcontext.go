// Package middleware carries the request-scoped context every handler
// relies on.
package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trollfjell/imalink-web/internal/pkg/env"
	"github.com/trollfjell/imalink-web/internal/pkg/session"
)

const (
	// IsDev marks a development environment in Locals.
	IsDev = "is_dev"
	// DisplaySizeKey is the per-session grid density preference in Locals.
	DisplaySizeKey = "display_size"
)

// AppContext loads environment and session state into Locals so
// handlers and templates never touch the session store directly.
func AppContext(c *fiber.Ctx) error {
	c.Locals(IsDev, env.GetEnv("APP_ENV", "prod") == "dev")

	if size := session.GetSessionValue(c, DisplaySizeKey); size != "" {
		c.Locals(DisplaySizeKey, size)
	}

	return c.Next()
}

// SaveDisplaySize persists the grid density preference in the session.
func SaveDisplaySize(c *fiber.Ctx, size string) error {
	return session.SetSessionValue(c, DisplaySizeKey, size)
}
