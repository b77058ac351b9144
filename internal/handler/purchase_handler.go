package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

type SupplierRequest struct {
	CompanyName   string      `json:"company_name"`
	ContactPerson string      `json:"contact_person"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	IsActive      bool        `json:"is_active"`
	ItemIDs       []uuid.UUID `json:"item_ids"`
}

func (r *SupplierRequest) toModel() *model.Supplier {
	return &model.Supplier{
		CompanyName:   r.CompanyName,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
		IsActive:      r.IsActive,
	}
}

// GET /api/v1/suppliers
func (h *PurchaseHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(suppliers)
}

// GET /api/v1/suppliers/:id
func (h *PurchaseHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.service.GetSupplier(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(supplier)
}

// POST /api/v1/suppliers
func (h *PurchaseHandler) CreateSupplier(c *fiber.Ctx) error {
	var req SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplier := req.toModel()
	if err := h.service.CreateSupplier(supplier, req.ItemIDs, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// PUT /api/v1/suppliers/:id
func (h *PurchaseHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	var req SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateSupplier(id, req.toModel(), req.ItemIDs, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": updated})
}

// DELETE /api/v1/suppliers/:id
func (h *PurchaseHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.service.DeleteSupplier(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}

// GetPurchaseOrders lists purchase orders, optionally filtered by ?status=.
// GET /api/v1/purchase-orders
func (h *PurchaseHandler) GetPurchaseOrders(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		orders, err := h.service.GetPurchaseOrdersByStatus(model.PurchaseOrderStatus(status))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
		}
		return c.JSON(orders)
	}

	orders, err := h.service.GetPurchaseOrders()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GET /api/v1/purchase-orders/:id
func (h *PurchaseHandler) GetPurchaseOrder(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	po, err := h.service.GetPurchaseOrder(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(po)
}

// POST /api/v1/purchase-orders
func (h *PurchaseHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var input service.PurchaseOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	po, err := h.service.CreatePurchaseOrder(input, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Purchase order created", "data": po})
}

type POStatusRequest struct {
	Status model.PurchaseOrderStatus `json:"status"`
}

// UpdatePurchaseOrderStatus walks the status machine; moving to delivered
// receives the goods into stock.
// PUT /api/v1/purchase-orders/:id/status
func (h *PurchaseHandler) UpdatePurchaseOrderStatus(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase order ID"})
	}

	var req POStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	po, err := h.service.UpdateStatus(id, req.Status, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Purchase order status updated", "data": po})
}
