package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MethodOverride lets HTML forms reach PUT, PATCH and DELETE routes: a POST
// carrying _method in the query string or form body is re-routed under that
// method. Register it before any other middleware.
func MethodOverride() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}
		m := c.Query("_method")
		if m == "" {
			m = c.FormValue("_method")
		}
		switch m = strings.ToUpper(strings.TrimSpace(m)); m {
		case fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
			c.Method(m)
			return c.RestartRouting()
		}
		return c.Next()
	}
}
