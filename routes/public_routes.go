package routes

import (
	"github.com/ftld/certforge/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/programs", handlers.ListPrograms)
	api.Get("/verify", handlers.VerifyCertificate)
}
