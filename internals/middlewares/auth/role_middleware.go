package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "speaksy_backend/internals/helpers"
)

// RequireRole guards a route group to one role (e.g. teacher-only roster).
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if helper.GetUserRole(c) != role {
			return fiber.NewError(fiber.StatusForbidden, "Forbidden - insufficient role")
		}
		return c.Next()
	}
}
