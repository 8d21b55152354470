package errs

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Render logs err against the request and writes the taxonomy-mapped JSON
// error response. Client-side failures log as warnings, server-side ones as
// errors.
func Render(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
