package routes

import (
	"github.com/ftld/certforge/handlers"
	"github.com/ftld/certforge/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard-analytics", handlers.GetDashboardAnalytics)

	programs := admin.Group("/programs")
	programs.Post("", handlers.CreateProgram)
}
