package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// HeaderUserID is the header carrying the caller identity. An upstream
// auth proxy is assumed to have verified it; the value is trusted
// verbatim.
const HeaderUserID = "X-User-Id"

// RequireUser is a Fiber middleware that rejects requests without an
// identity header and stores the identity in the request context for
// subsequent handlers.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(HeaderUserID)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing X-User-Id",
			})
		}

		c.Locals("user_id", userID)

		return c.Next()
	}
}
