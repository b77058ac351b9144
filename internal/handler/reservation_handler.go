package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReservationHandler struct {
	service service.ReservationService
}

func NewReservationHandler(s service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: s}
}

// CreateReservation is public; walk-in guests book without an account.
// POST /api/v1/reservations
func (h *ReservationHandler) CreateReservation(c *fiber.Ctx) error {
	var res model.Reservation
	if err := c.BodyParser(&res); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.Create(&res); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Reservation requested", "data": res})
}

// GetReservations lists reservations; ?upcoming=true restricts to future ones.
// GET /api/v1/reservations
func (h *ReservationHandler) GetReservations(c *fiber.Ctx) error {
	var (
		reservations []model.Reservation
		err          error
	)
	if c.Query("upcoming") == "true" {
		reservations, err = h.service.GetUpcoming()
	} else {
		reservations, err = h.service.GetAll()
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(reservations)
}

// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetReservation(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	res, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

type ReservationStatusRequest struct {
	Status model.ReservationStatus `json:"status"`
}

// PUT /api/v1/reservations/:id/status
func (h *ReservationHandler) UpdateReservationStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	var req ReservationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.UpdateStatus(id, req.Status, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reservation status updated"})
}

// DELETE /api/v1/reservations/:id
func (h *ReservationHandler) DeleteReservation(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid reservation ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reservation deleted"})
}
