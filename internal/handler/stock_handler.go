package handler

import (
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// GET /api/v1/stock
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	stocks, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stocks)
}

// GetLowStock lists items strictly below their min threshold.
// GET /api/v1/stock/low
func (h *StockHandler) GetLowStock(c *fiber.Ctx) error {
	stocks, err := h.service.GetLow()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stocks)
}

// GET /api/v1/stock/:itemID
func (h *StockHandler) GetItemStock(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	stock, err := h.service.GetByItem(itemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(stock)
}

// GET /api/v1/stock/:itemID/history
func (h *StockHandler) GetItemHistory(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	txns, err := h.service.GetItemHistory(itemID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(txns)
}

type AdjustStockRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// AdjustStock overwrites the quantity with an absolute target.
// PUT /api/v1/stock/:itemID/quantity
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	stock, err := h.service.Adjust(itemID, req.Quantity, req.Reason, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": stock})
}

type ThresholdsRequest struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// PUT /api/v1/stock/:itemID/thresholds
func (h *StockHandler) UpdateThresholds(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req ThresholdsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateThresholds(itemID, req.Min, req.Max, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Thresholds updated"})
}

type WasteRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// RecordWaste logs spoilage against an item's stock.
// POST /api/v1/stock/:itemID/waste
func (h *StockHandler) RecordWaste(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("itemID"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req WasteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Reason == "" {
		return c.Status(400).JSON(fiber.Map{"error": "A reason is required for waste entries"})
	}

	stock, err := h.service.RecordWaste(itemID, req.Quantity, req.Reason, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Waste recorded", "data": stock})
}
