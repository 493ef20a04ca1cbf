package handler

import (
	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	service service.ExpenseService
}

func NewExpenseHandler(s service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: s}
}

func (h *ExpenseHandler) CreateExpense(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	var req service.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	expense, err := h.service.AddExpense(owner, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(expense)
}

func (h *ExpenseHandler) GetExpenses(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	expenses, err := h.service.ListExpenses(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(expenses)
}

func (h *ExpenseHandler) DeleteExpense(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid expense ID"})
	}

	if err := h.service.DeleteExpense(owner, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ExpenseHandler) GetCategorySummary(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	summary, err := h.service.SummaryByCategory(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
