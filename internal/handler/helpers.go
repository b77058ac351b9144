package handler

import (
	"errors"

	"go-restaurant-api/internal/middleware"
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"
	"go-restaurant-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx converts the authenticated claims into the service-layer actor.
func actorFromCtx(c *fiber.Ctx) service.Actor {
	claims := middleware.Claims(c)
	if claims == nil {
		return service.Actor{}
	}
	actorType := model.ActorCustomer
	if claims.ActorType == jwt.ActorStaff {
		actorType = model.ActorStaff
	}
	return service.Actor{
		ID:   claims.ActorID,
		Type: actorType,
		Name: claims.Name,
	}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps service sentinel errors onto HTTP status codes; anything
// unrecognized is treated as a downstream failure.
func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrMenuItemNotFound),
		errors.Is(err, service.ErrStockNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrSupplierNotFound),
		errors.Is(err, service.ErrPurchaseOrderNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrEmployeeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return 404
	case errors.Is(err, service.ErrCodeExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyVerified),
		errors.Is(err, service.ErrIllegalTransition):
		return 409
	case errors.Is(err, service.ErrNotReviewOwner):
		return 403
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrNegativeQuantity),
		errors.Is(err, service.ErrInvalidThresholds),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidCart),
		errors.Is(err, service.ErrEmptyPurchase),
		errors.Is(err, service.ErrTooManyImages),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrOrderNotPending):
		return 400
	default:
		return 500
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
