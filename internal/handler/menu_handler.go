package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MenuHandler struct {
	service service.MenuService
}

func NewMenuHandler(s service.MenuService) *MenuHandler {
	return &MenuHandler{service: s}
}

// GetMenu lists the menu, optionally filtered by ?category=.
// GET /api/v1/menu
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	if category := c.Query("category"); category != "" {
		items, err := h.service.GetByCategory(model.MenuCategory(category))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(items)
	}

	items, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(items)
}

// GET /api/v1/menu/:id
func (h *MenuHandler) GetMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	item, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(item)
}

// POST /api/v1/menu
func (h *MenuHandler) CreateMenuItem(c *fiber.Ctx) error {
	var item model.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&item, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Menu item created", "data": item})
}

// PUT /api/v1/menu/:id
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var item model.MenuItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &item, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Menu item updated", "data": updated})
}

// DELETE /api/v1/menu/:id
func (h *MenuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	if err := h.service.Delete(id, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Menu item deleted"})
}

type AddImageRequest struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// POST /api/v1/menu/:id/images
func (h *MenuHandler) AddImage(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req AddImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.URL == "" || req.PublicID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "url and public_id are required"})
	}

	img, err := h.service.AddImage(id, req.URL, req.PublicID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Image added", "data": img})
}
