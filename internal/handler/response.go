package handler

import (
	"errors"

	"go-3pl-warehouse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// respondError maps service error kinds to a status and the {message, error?} body.
// Unexpected errors keep their text in "error" so the dashboard can show it.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	var se *service.Error
	if errors.As(err, &se) {
		return c.Status(statusFor(se.Kind)).JSON(fiber.Map{"message": se.Message})
	}

	logrus.Errorf("%s %s: %s: %v", c.Method(), c.Path(), fallback, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fallback,
		"error":   err.Error(),
	})
}

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(kind, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(kind, service.ErrValidation),
		errors.Is(kind, service.ErrConflict),
		errors.Is(kind, service.ErrInsufficientInventory):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid JSON"})
}

// pathID parses :name; a malformed id reports as not found for entity
func pathID(c *fiber.Ctx, name, entity string) (uuid.UUID, error) {
	return service.ParseID(c.Params(name), entity)
}
