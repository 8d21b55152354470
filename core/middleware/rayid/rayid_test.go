package rayid_test

import (
	"net/http/httptest"
	"testing"

	"scorebook/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())

	var seen string
	app.Get("/", func(c *fiber.Ctx) error {
		seen = rayid.FromCtx(c)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("Generates ID", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		assert.NoError(t, err)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, resp.Header.Get(rayid.Header))
	})

	t.Run("Honors Incoming ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.Header, "upstream-ray")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, "upstream-ray", seen)
		assert.Equal(t, "upstream-ray", resp.Header.Get(rayid.Header))
	})
}
