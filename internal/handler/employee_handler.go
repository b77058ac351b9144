package handler

import (
	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	service service.EmployeeService
}

func NewEmployeeHandler(s service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: s}
}

type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
}

// GET /api/v1/employees
func (h *EmployeeHandler) GetEmployees(c *fiber.Ctx) error {
	employees, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	responses := make([]model.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}
	return c.JSON(responses)
}

// GET /api/v1/employees/:id
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	employee, err := h.service.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(employee.ToResponse())
}

// POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	employee := &model.Employee{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Role:    req.Role,
		IsAdmin: req.IsAdmin,
	}
	if err := h.service.Create(employee, req.Password, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Employee created", "data": employee.ToResponse()})
}

// PUT /api/v1/employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee model.Employee
	if err := c.BodyParser(&employee); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.Update(id, &employee, actorFromCtx(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee updated", "data": updated.ToResponse()})
}

// PUT /api/v1/employees/:id/deactivate
func (h *EmployeeHandler) DeactivateEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	if err := h.service.Deactivate(id, actorFromCtx(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deactivated"})
}

// DELETE /api/v1/employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	if err := h.service.Delete(id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Employee deleted"})
}
