package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskforge/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, gate fiber.Handler) {
	// Health and root routes stay outside the API group
	SetupHealthRoutes(app)

	api := app.Group("/api")

	SetupAuthRoutes(api, h, gate)
	SetupTaskRoutes(api, h, gate)
}
