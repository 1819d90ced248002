package routes

import (
	"github.com/gofiber/fiber/v2"
)

// NotFoundRoute describes the fallback 404 route. Register it last.
func NotFoundRoute(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"msg": "sorry, endpoint is not found",
		})
	})
}
