package handler

import (
	"time"

	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(stats)
}

// GET /api/v1/dashboard/categories
func (h *DashboardHandler) GetCategoryDistribution(c *fiber.Ctx) error {
	dist, err := h.service.GetCategoryDistribution()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(dist)
}

// GetMovement returns daily inbound/outbound stock totals for ?days= back
// (default 7, capped at 90).
// GET /api/v1/dashboard/movement
func (h *DashboardHandler) GetMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	movement, err := h.service.GetMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(movement)
}

// GET /api/v1/dashboard/top-sellers
func (h *DashboardHandler) GetTopSellers(c *fiber.Ctx) error {
	sellers, err := h.service.GetTopSellers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sellers)
}

// GET /api/v1/dashboard/transactions
func (h *DashboardHandler) GetRecentTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	txns, err := h.service.GetRecentTransactions(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(txns)
}

// GetSalesSummary reports order count and revenue over a named range.
// GET /api/v1/dashboard/sales?range=7d|1m|3m|6m|12m
func (h *DashboardHandler) GetSalesSummary(c *fiber.Ctx) error {
	endDate := time.Now()
	var startDate time.Time

	switch c.Query("range", "1m") {
	case "7d":
		startDate = endDate.AddDate(0, 0, -7)
	case "1m":
		startDate = endDate.AddDate(0, -1, 0)
	case "3m":
		startDate = endDate.AddDate(0, -3, 0)
	case "6m":
		startDate = endDate.AddDate(0, -6, 0)
	case "12m":
		startDate = endDate.AddDate(-1, 0, 0)
	default:
		return c.Status(400).JSON(fiber.Map{"error": "range must be one of 7d, 1m, 3m, 6m, 12m"})
	}

	summary, err := h.service.GetSalesSummary(startDate, endDate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(summary)
}
