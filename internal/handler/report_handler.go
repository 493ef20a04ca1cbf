package handler

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"go-farm-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

func (h *ReportHandler) GetExpensesByCategory(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	summary, err := h.service.ExpensesByCategory(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func (h *ReportHandler) GetPendingLabor(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	laborers, err := h.service.PendingLabor(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(laborers)
}

func (h *ReportHandler) GetCurrentStock(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	items, err := h.service.CurrentStock(owner)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// ExportExpensesCSV streams the category summary as a CSV attachment.
func (h *ReportHandler) ExportExpensesCSV(c *fiber.Ctx) error {
	owner, err := ownerID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
	}

	summary, err := h.service.ExpensesByCategory(owner)
	if err != nil {
		return respondError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Category", "Total"})
	for _, row := range summary {
		_ = w.Write([]string{row.Category, strconv.FormatFloat(row.Total, 'f', -1, 64)})
	}
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=farm_expenses.csv")
	return c.Send(buf.Bytes())
}
