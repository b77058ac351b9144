package handler

import (
	"go-restaurant-api/internal/middleware"
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview creates or replaces the customer's review of an item.
// POST /api/v1/menu/:id/reviews
func (h *ReviewHandler) SubmitReview(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	var req SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	claims := middleware.Claims(c)
	review := &model.Review{
		MenuItemID: itemID,
		UserID:     claims.ActorID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	review.CreatedBy = claims.ActorID.String()

	saved, err := h.service.Submit(review)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Review saved", "data": saved})
}

// GetItemReviews is public.
// GET /api/v1/menu/:id/reviews
func (h *ReviewHandler) GetItemReviews(c *fiber.Ctx) error {
	itemID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid menu item ID"})
	}

	reviews, err := h.service.GetForItem(itemID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(reviews)
}

// DeleteReview removes the caller's own review.
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	claims := middleware.Claims(c)
	if err := h.service.Delete(id, claims.ActorID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
