package handler

import (
	"os"
	"strconv"

	"go-restaurant-api/internal/middleware"
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/repository"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type OrderHandler struct {
	orderService service.OrderService
	userRepo     repository.UserRepository
}

func NewOrderHandler(orderService service.OrderService, userRepo repository.UserRepository) *OrderHandler {
	return &OrderHandler{orderService: orderService, userRepo: userRepo}
}

func (h *OrderHandler) currentUser(c *fiber.Ctx) (*model.User, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil, fiber.NewError(401, "Missing authorization token")
	}
	user, err := h.userRepo.FindByID(claims.ActorID)
	if err != nil || user == nil {
		return nil, fiber.NewError(401, "Account no longer exists")
	}
	return user, nil
}

// clientURL builds a storefront redirect target for the gateway callbacks.
func clientURL(path string) string {
	base := os.Getenv("CLIENT_BASE_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return base + path
}

// PlaceOrder is the cash-on-delivery checkout.
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var input service.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.orderService.PlaceOrder(user, input)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// InitiateGatewayPayment creates a pending order and returns the hosted
// gateway redirect URL.
// POST /api/v1/orders/gateway
func (h *OrderHandler) InitiateGatewayPayment(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	var input service.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	redirectURL, order, err := h.orderService.InitiateGatewayPayment(user, input)
	if err != nil {
		if err == service.ErrGatewayRejected {
			return c.Status(502).JSON(fiber.Map{"error": err.Error()})
		}
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"redirect_url": redirectURL, "transaction_id": order.TransactionID})
}

// GatewaySuccess is where the gateway sends the customer's browser after a
// completed payment. The response is a redirect to the storefront, with the
// outcome encoded in query params.
// POST /payment/success/:tranID
func (h *OrderHandler) GatewaySuccess(c *fiber.Ctx) error {
	tranID := c.Params("tranID")
	order, err := h.orderService.HandleGatewaySuccess(tranID)
	if err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("gateway success callback failed")
		return c.Redirect(clientURL("/payment/result?status=failed&reason="+failureReason(err)), 303)
	}
	return c.Redirect(clientURL("/payment/result?status=success&token="+strconv.Itoa(order.TokenNumber)), 303)
}

// POST /payment/fail/:tranID
func (h *OrderHandler) GatewayFail(c *fiber.Ctx) error {
	tranID := c.Params("tranID")
	if err := h.orderService.HandleGatewayFailure(tranID); err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("gateway fail callback on unknown order")
	}
	return c.Redirect(clientURL("/payment/result?status=failed&reason=declined"), 303)
}

// POST /payment/cancel/:tranID
func (h *OrderHandler) GatewayCancel(c *fiber.Ctx) error {
	tranID := c.Params("tranID")
	if err := h.orderService.HandleGatewayFailure(tranID); err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("gateway cancel callback on unknown order")
	}
	return c.Redirect(clientURL("/payment/result?status=cancelled"), 303)
}

// GatewayIPN is the server-to-server notification. The transaction is
// re-validated with the gateway before the order is marked verified.
// POST /payment/ipn
func (h *OrderHandler) GatewayIPN(c *fiber.Ctx) error {
	tranID := c.FormValue("tran_id")
	if tranID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "tran_id is required"})
	}

	if err := h.orderService.HandleIPN(tranID); err != nil {
		log.Warn().Err(err).Str("tran_id", tranID).Msg("IPN validation failed")
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Payment verified"})
}

// GET /api/v1/orders/my
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	orders, err := h.orderService.GetByUser(claims.ActorID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GET /api/v1/orders?payment_method=
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	var (
		orders []model.Order
		err    error
	)
	if method := c.Query("payment_method"); method != "" {
		orders, err = h.orderService.GetByPaymentMethod(method)
	} else {
		orders, err = h.orderService.GetAll()
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.orderService.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(order)
}

type VerifyOrderRequest struct {
	Verified bool `json:"verified"`
}

// PUT /api/v1/orders/:id/verify
func (h *OrderHandler) VerifyOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req VerifyOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.orderService.SetVerified(id, req.Verified); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order verification updated"})
}

func failureReason(err error) string {
	switch err {
	case service.ErrInsufficientStock:
		return "out_of_stock"
	case service.ErrOrderNotFound:
		return "unknown_order"
	case service.ErrOrderNotPending:
		return "already_processed"
	default:
		return "internal_error"
	}
}
