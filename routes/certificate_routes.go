package routes

import (
	"github.com/ftld/certforge/handlers"
	"github.com/ftld/certforge/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func CertificateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	certificates := api.Group("/certificates")
	certificates.Get("", handlers.ListCertificates)
	certificates.Post("", middleware.Protected(), middleware.AdminRequired(), handlers.CreateCertificate)
	certificates.Post("/bulk-create", middleware.Protected(), middleware.AdminRequired(), handlers.BulkCreateCertificates)
	certificates.Post("/bulk-upload", middleware.Protected(), middleware.AdminRequired(), handlers.BulkUploadCertificates)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws/issuance-feed", websocket.New(handlers.ServeIssuanceFeed))
}
