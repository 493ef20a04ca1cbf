package handler

import (
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LaborHandler struct {
	service service.LaborService
}

func NewLaborHandler(s service.LaborService) *LaborHandler {
	return &LaborHandler{service: s}
}

func (h *LaborHandler) CreateLaborer(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.CreateLaborerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	laborer, err := h.service.AddLaborer(owner, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(laborer)
}

func (h *LaborHandler) GetLaborers(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	laborers, err := h.service.ListLaborers(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(laborers)
}

func (h *LaborHandler) DeleteLaborer(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid laborer ID"})
	}

	if err := h.service.DeleteLaborer(owner, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *LaborHandler) GetPendingSummary(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	total, err := h.service.PendingWages(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total_pending": total})
}
