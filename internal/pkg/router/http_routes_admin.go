package router

import (
	"github.com/enfantsenjoie/eejsite/app/controllers"
	"github.com/enfantsenjoie/eejsite/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/dashboard", middleware.RequireAdmin)
	adminGroup.Get("/", controllers.HandleAdminDashboard)

	// Donations
	adminGroup.Get("/donations", controllers.HandleAdminDonations)
	adminGroup.Get("/fedapay-debug", controllers.HandleAdminFedaPayDebug)

	// News management
	adminGroup.Get("/news", controllers.HandleAdminNews)
	adminGroup.Get("/news/create", controllers.HandleAdminNewsCreate)
	adminGroup.Post("/news/store", controllers.HandleAdminNewsStore)
	adminGroup.Get("/news/edit/:id", controllers.HandleAdminNewsEdit)
	adminGroup.Post("/news/update/:id", controllers.HandleAdminNewsUpdate)
	adminGroup.Post("/news/delete/:id", controllers.HandleAdminNewsDelete)

	// Contact intake
	adminGroup.Get("/contacts", controllers.HandleAdminContacts)
	adminGroup.Post("/contacts/handled/:id", controllers.HandleAdminContactHandled)

	// Gallery collections
	adminGroup.Get("/gallery", controllers.HandleAdminGallery)
	adminGroup.Post("/gallery/create", controllers.HandleAdminGalleryCreate)
	adminGroup.Post("/gallery/import/:id", controllers.HandleAdminGalleryImport)
}
