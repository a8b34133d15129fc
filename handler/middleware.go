package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/efad07/lumina/pkg/jwt"
)

const userIDKey = "user_id"

// Authenticate resolves the bearer token when one is present and stashes
// the caller's id in locals. Requests without a token pass through
// anonymously; routes that need an identity enforce it with RequireAuth.
func Authenticate(manager *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		token := strings.TrimPrefix(header, "Bearer ")
		claims, err := manager.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		c.Locals(userIDKey, claims.UserID)
		return c.Next()
	}
}

// RequireAuth rejects requests that did not present a valid token.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUserID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		return c.Next()
	}
}

func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(userIDKey).(string); ok {
		return id
	}
	return ""
}
