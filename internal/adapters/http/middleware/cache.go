package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// NoStore marks responses as uncacheable. Reports and donation listings
// are read fresh from the ledger on every call.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		c.Set(fiber.HeaderCacheControl, "no-store")
		return err
	}
}
