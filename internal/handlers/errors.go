package handlers

import (
	"errors"
	"log"

	"kanban/internal/services"

	"github.com/gofiber/fiber/v2"
)

// serviceErrorResponse maps a service error onto the wire. Guard failures
// carry their own kind; anything else is a 500. This is the single place the
// Conflict/NotFound/NotAcceptable vocabulary meets HTTP.
func serviceErrorResponse(c *fiber.Ctx, message string, err error) error {
	var se *services.StatusError
	if errors.As(err, &se) {
		var status int
		switch se.Kind {
		case services.KindConflict:
			status = fiber.StatusConflict
		case services.KindNotFound:
			status = fiber.StatusNotFound
		case services.KindNotAcceptable:
			status = fiber.StatusNotAcceptable
		default:
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"message": message,
			"error":   se.Message,
		})
	}

	log.Printf("%s: %v", message, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
