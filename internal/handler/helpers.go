package handler

import (
	"errors"

	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ownerID pulls the authenticated user's id out of the context (set by the
// auth middleware).
func ownerID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Locals("user_id")
	if raw == nil {
		return uuid.Nil, errors.New("no authenticated user in context")
	}
	return uuid.Parse(raw.(string))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the service error taxonomy to HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(400).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(400).JSON(fiber.Map{"error": "Stock insufficient"})
	case errors.Is(err, service.ErrItemNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Item not found"})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, service.ErrMobileTaken):
		return c.Status(409).JSON(fiber.Map{"error": "Mobile number already registered"})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Server error"})
	}
}
