package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "mulemobile/internal/log"
)

// RequireAdmin sends visitors without a session to the login page and
// signed-in customers back to the home page.
func RequireAdmin(c *fiber.Ctx) error {
	return guard(c, true)
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(c *fiber.Ctx) error {
	return guard(c, false)
}

func guard(c *fiber.Ctx, admin bool) error {
	s := current(c)
	if s == nil {
		return c.Redirect("/login")
	}
	to, ok := s.Auth.Guard(admin)
	if !ok {
		if admin {
			applog.Security(c, "access.denied.admin", map[string]any{"redirect": to})
		}
		return c.Redirect(to)
	}
	return c.Next()
}
