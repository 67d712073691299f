package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"taskforge/interfaces/api/handlers"
	"taskforge/interfaces/api/middleware"
	"taskforge/interfaces/api/routes"
	"taskforge/pkg/di"
	"taskforge/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		// Logger may not be up yet
		panic("Failed to initialize container: " + err.Error())
	}

	setupGracefulShutdown(container)

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
		AppName:      cfg.App.Name,
	})

	// Order matters: request id before logging
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CorsMiddleware(cfg.App.CORSOrigins))

	services := container.GetHandlerServices()
	h := handlers.NewHandlers(services)
	gate := middleware.Protected(container.TokenManager, container.UserService)

	routes.SetupRoutes(app, h, gate)

	logger.Info("Server starting",
		"port", cfg.App.Port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
