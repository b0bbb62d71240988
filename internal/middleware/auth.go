package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/types"
)

const adminErrorType = "admin.authorization"

// AdminToken guards admin routes with a static bearer token. An empty
// token disables the routes entirely.
func AdminToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return types.NewCustomError(fiber.StatusForbidden, adminErrorType, "admin routes are disabled")
		}

		presented := c.Get("X-Admin-Token")
		if presented == "" {
			auth := c.Get(fiber.HeaderAuthorization)
			if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
				presented = strings.TrimSpace(after)
			}
		}
		if presented == "" {
			return types.NewCustomError(fiber.StatusForbidden, adminErrorType, "admin token not found")
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return types.NewCustomError(fiber.StatusForbidden, adminErrorType, "invalid admin token")
		}

		c.Locals("admin", true)
		return c.Next()
	}
}
