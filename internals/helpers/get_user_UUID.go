package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserUUID resolves the authenticated user's id from request locals.
// The ok flag lets callers tell a logged-out request from a real failure.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, bool) {
	if userIDRaw := c.Locals("user_id"); userIDRaw != nil {
		if userIDStr, ok := userIDRaw.(string); ok {
			if parsed, err := uuid.Parse(userIDStr); err == nil {
				return parsed, true
			}
		}
	}
	return uuid.Nil, false
}

func GetUserRole(c *fiber.Ctx) string {
	if roleRaw := c.Locals("role"); roleRaw != nil {
		if role, ok := roleRaw.(string); ok {
			return role
		}
	}
	return ""
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}
