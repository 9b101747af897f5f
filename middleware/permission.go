package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"microcourses/services"
)

// Authorize returns a middleware that restricts access to the given roles.
// Must run after JWTMiddleware.
func Authorize(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized, "",
				"User not authenticated")
		}

		for _, role := range allowedRoles {
			if user.Role == role {
				return c.Next()
			}
		}

		return ErrorResponse(c, fiber.StatusForbidden, services.CodeForbidden, "",
			fmt.Sprintf("Access denied: requires one of [%s]", strings.Join(allowedRoles, ", ")))
	}
}

// RequireApprovedCreator restricts access to creators whose application
// has been approved. Must run after JWTMiddleware.
func RequireApprovedCreator(c *fiber.Ctx) error {
	user, ok := CurrentUser(c)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, services.CodeUnauthorized, "",
			"User not authenticated")
	}

	if !user.IsApprovedCreator() {
		return ErrorResponse(c, fiber.StatusForbidden, services.CodeNotApprovedCreator, "creatorStatus",
			"You must be an approved creator to access this resource")
	}

	return c.Next()
}
