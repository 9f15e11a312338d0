package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskboard/interfaces/api/handlers"
	"taskboard/interfaces/api/middleware"
)

type AppOptions struct {
	Name         string
	AllowOrigins string
}

// NewApp builds the Fiber app with middleware and routes in place.
func NewApp(opts AppOptions, h *handlers.Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(),
		AppName:               opts.Name,
		BodyLimit:             1 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Request id first so every log line carries it; recover sits inside
	// the logger so panics are logged as 500s.
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.RecoverMiddleware())
	app.Use(middleware.CorsMiddleware(opts.AllowOrigins))

	SetupRoutes(app, h)

	return app
}
