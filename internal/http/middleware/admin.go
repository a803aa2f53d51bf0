package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AdminCookieName is the HttpOnly cookie carrying the admin session token.
const AdminCookieName = "admin_session"

// Authenticator validates an admin session token.
type Authenticator interface {
	Authenticate(token string) bool
}

// AdminToken returns the session token from the admin cookie, falling back to a Bearer header.
func AdminToken(c *fiber.Ctx) string {
	if t := c.Cookies(AdminCookieName); t != "" {
		return t
	}
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireAdmin rejects requests without a valid admin session with 401 UNAUTHORIZED.
func RequireAdmin(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.Authenticate(AdminToken(c)) {
			rid, _ := c.Locals(RequestIDLocalKey).(string)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"request_id": rid,
				"error": fiber.Map{
					"code":    "UNAUTHORIZED",
					"message": "authentication required",
				},
			})
		}
		return c.Next()
	}
}
