package handler

import (
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CropHandler struct {
	service service.CropService
}

func NewCropHandler(s service.CropService) *CropHandler {
	return &CropHandler{service: s}
}

func (h *CropHandler) CreatePlanting(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.CreatePlantingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	planting, err := h.service.AddPlanting(owner, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(planting)
}

func (h *CropHandler) GetPlantings(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	plantings, err := h.service.ListPlantings(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plantings)
}

func (h *CropHandler) UpdatePlanting(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid planting ID"})
	}

	var req service.UpdatePlantingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	planting, err := h.service.UpdatePlanting(owner, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(planting)
}

func (h *CropHandler) DeletePlanting(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid planting ID"})
	}

	if err := h.service.DeletePlanting(owner, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CropHandler) GetTasks(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	plantingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid planting ID"})
	}

	tasks, err := h.service.ListTasks(owner, plantingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(tasks)
}

func (h *CropHandler) CreateTask(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	plantingID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid planting ID"})
	}

	var req service.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	task, err := h.service.AddTask(owner, plantingID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(task)
}

func (h *CropHandler) CompleteTask(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	taskID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid task ID"})
	}

	var body struct {
		CompletedDate string `json:"completed_date"`
	}
	if err := c.BodyParser(&body); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	task, err := h.service.CompleteTask(owner, taskID, body.CompletedDate)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(task)
}

func (h *CropHandler) GetSummary(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	summary, err := h.service.Summary(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
