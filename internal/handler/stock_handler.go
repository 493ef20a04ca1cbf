package handler

import (
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

func (h *StockHandler) RegisterItem(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.RegisterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.service.RegisterItem(owner, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(item)
}

func (h *StockHandler) GetItems(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	items, err := h.service.ListItems(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func (h *StockHandler) ApplyTransaction(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.ApplyTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.service.ApplyTransaction(c.UserContext(), owner, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(result)
}

func (h *StockHandler) GetTransactions(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	itemID, err := parseUUID(c.Params("itemId"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	transactions, err := h.service.ListTransactions(owner, itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}
