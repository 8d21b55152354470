package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderKey is the header clients send the API key in.
const HeaderKey = "X-API-Key"

// Config holds the settings for the auth middleware.
type Config struct {
	// ApiKey is the shared secret required on every request. An empty key
	// disables authentication (local single-user setups).
	ApiKey string
}

// New returns a middleware that rejects requests missing the configured API
// key. Comparison is constant time.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}

		provided := c.Get(HeaderKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
