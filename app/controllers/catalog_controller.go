package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/trollfjell/imalink-web/app/models"
)

// Thin JSON pass-through for the author and event catalogs. Local
// validation keeps malformed records off the wire; everything else is
// the remote API's business.

// HandleAuthorList returns all photographer records.
func HandleAuthorList(c *fiber.Ctx) error {
	authors, err := apiClient.ListAuthors(c.Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": authors})
}

// HandleAuthorCreate creates a photographer record.
func HandleAuthorCreate(c *fiber.Ctx) error {
	var author models.Author
	if err := c.BodyParser(&author); err != nil {
		return jsonError(c, models.NewValidationError("invalid author payload"))
	}
	if err := author.Validate(); err != nil {
		return jsonError(c, err)
	}

	created, err := apiClient.CreateAuthor(c.Context(), author)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleAuthorUpdate updates a photographer record.
func HandleAuthorUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	var author models.Author
	if err := c.BodyParser(&author); err != nil {
		return jsonError(c, models.NewValidationError("invalid author payload"))
	}
	if err := author.Validate(); err != nil {
		return jsonError(c, err)
	}

	if err := apiClient.UpdateAuthor(c.Context(), id, author); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAuthorDelete removes a photographer record.
func HandleAuthorDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := apiClient.DeleteAuthor(c.Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleEventList returns all events.
func HandleEventList(c *fiber.Ctx) error {
	events, err := apiClient.ListEvents(c.Context())
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(fiber.Map{"data": events})
}

// HandleEventGet returns one event.
func HandleEventGet(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	event, err := apiClient.GetEvent(c.Context(), id)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(event)
}

// HandleEventCreate creates an event.
func HandleEventCreate(c *fiber.Ctx) error {
	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return jsonError(c, models.NewValidationError("invalid event payload"))
	}
	if err := event.Validate(); err != nil {
		return jsonError(c, err)
	}

	created, err := apiClient.CreateEvent(c.Context(), event)
	if err != nil {
		return jsonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleEventUpdate updates an event.
func HandleEventUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}

	var event models.Event
	if err := c.BodyParser(&event); err != nil {
		return jsonError(c, models.NewValidationError("invalid event payload"))
	}
	if err := event.Validate(); err != nil {
		return jsonError(c, err)
	}

	if err := apiClient.UpdateEvent(c.Context(), id, event); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleEventDelete removes an event. Photos keep existing; only the
// grouping goes away.
func HandleEventDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return jsonError(c, err)
	}
	if err := apiClient.DeleteEvent(c.Context(), id); err != nil {
		return jsonError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
