package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Khaf-dev/aiforus/internal/ports"
)

const bearerScheme = "Bearer "

// AuthRequired gates protected routes on a valid access token and
// exposes the authenticated user to handlers through Locals.
func AuthRequired(auth ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerScheme) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, bearerScheme))
		user, err := auth.ValidateToken(c.Context(), token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user", user)

		return c.Next()
	}
}
