package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jjenkins/gazette/internal/query"
)

// HealthHandler reports the size of the served snapshot
func HealthHandler(engine *query.Engine, sessions *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		set := engine.Snapshot()
		return c.JSON(fiber.Map{
			"status":   "ok",
			"records":  set.Len(),
			"dropped":  set.Dropped(),
			"sessions": sessions.Len(),
		})
	}
}
