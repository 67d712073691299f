package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskforge/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, gate fiber.Handler) {
	tasks := api.Group("/tasks")
	tasks.Use(gate)
	tasks.Get("/", h.TaskHandler.ListTasks)
	tasks.Post("/", h.TaskHandler.CreateTask)
	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id/status", h.TaskHandler.UpdateStatus)
	tasks.Patch("/:id/complete", h.TaskHandler.MarkComplete)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)
}
