package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskforge/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, gate fiber.Handler) {
	auth := api.Group("/auth")
	auth.Post("/register", h.AuthHandler.Register)
	auth.Post("/login", h.AuthHandler.Login)

	auth.Get("/profile", gate, h.AuthHandler.GetProfile)
	auth.Put("/profile", gate, h.AuthHandler.UpdateProfile)
	auth.Put("/change-password", gate, h.AuthHandler.ChangePassword)
}
