package middleware

import (
	"strings"

	"go-restaurant-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// tokenFromRequest pulls the credential from the Authorization header or,
// failing that, the access_token cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("access_token")
}

// RequireAuth validates the signed token and stores the claims in the request
// context for downstream handlers.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// Claims returns the authenticated claims set by RequireAuth, or nil.
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(claimsKey).(*jwt.Claims)
	return claims
}

// RequireCustomer rejects staff tokens; customer-facing checkout and review
// routes want a purchaser identity.
func RequireCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil || claims.ActorType != jwt.ActorCustomer {
			return c.Status(403).JSON(fiber.Map{"error": "Customer account required"})
		}
		return c.Next()
	}
}

// RequirePermission gates an endpoint on the central policy table.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := Claims(c)
		if claims == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}
		if !IsAllowed(claims, resource, action) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + resource + ":" + action + "' permission",
			})
		}
		return c.Next()
	}
}
