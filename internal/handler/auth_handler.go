package handler

import (
	"time"

	"go-restaurant-api/internal/model"
	"go-restaurant-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Register creates an unverified customer account and mails a code.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user := &model.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := h.authService.Register(user, req.Password); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Account created, check your email for the verification code",
		"user":    user.ToResponse(),
	})
}

// VerifyEmail confirms the mailed one-time code.
// POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and code are required"})
	}

	if err := h.authService.VerifyEmail(req.Email, req.Code); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Email verified"})
}

// ResendVerification mails a fresh code to an unverified account.
// POST /api/v1/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	}

	if err := h.authService.ResendVerification(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Verification code sent"})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(resp)
}

// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset code sent"})
}

// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email, code, and new_password are required"})
	}

	if err := h.authService.ResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

// POST /api/v1/auth/staff/login
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	resp, err := h.authService.StaffLogin(req.Email, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(resp)
}

// POST /api/v1/auth/staff/forgot-password
func (h *AuthHandler) StaffForgotPassword(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required"})
	}

	if err := h.authService.StaffForgotPassword(req.Email); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset code sent"})
}

// POST /api/v1/auth/staff/reset-password
func (h *AuthHandler) StaffResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email, code, and new_password are required"})
	}

	if err := h.authService.StaffResetPassword(req.Email, req.Code, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}
