package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets default Cache-Control headers on GET responses.
// Handlers that already set the header win.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string
		switch {
		case path == "/api/v1/health" || path == "/api/v1/ready":
			ttl = "no-cache" // monitors want fresh state

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/api/v1/companies":
			ttl = "public, max-age=30" // list changes on every write

		case strings.HasPrefix(path, "/api/v1/companies/"):
			ttl = "public, max-age=60"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}
		return err
	}
}
