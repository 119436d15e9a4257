package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"wanderlust/internal/domain"
	applog "wanderlust/internal/log"
	"wanderlust/internal/validate"
)

const genericMessage = "Something went wrong!"

// ErrorHandler is the single place handler errors turn into responses. Every
// error renders the "error" view with a status and a message; 5xx details are
// logged, never shown.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, genericMessage

	var verr *validate.Error
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		status, msg = fiber.StatusBadRequest, verr.Error()
		c.Status(status)
		applog.Warn(c, "validation.fail", map[string]any{"details": verr.Details})
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Listing not found"
	case errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError:
		status, msg = ferr.Code, ferr.Message
	default:
		c.Status(status)
		applog.Error(c, "server.error", err, nil)
	}

	c.Status(status)
	if rerr := c.Render("error", fiber.Map{"Status": status, "Message": msg}); rerr != nil {
		return c.Status(status).SendString(msg)
	}
	return nil
}

// NotFound answers every request no route matched.
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "Page Not Found!")
}
