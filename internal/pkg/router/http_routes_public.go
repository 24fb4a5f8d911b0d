package router

import (
	"github.com/enfantsenjoie/eejsite/app/controllers"
	"github.com/enfantsenjoie/eejsite/internal/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Public content pages
	app.Get("/actualites", loggedInMiddleware, controllers.HandleNewsIndex)
	app.Get("/actualites/:slug", loggedInMiddleware, controllers.HandleNewsShow)
	app.Get("/recherche", loggedInMiddleware, controllers.HandleSearch)
	app.Get("/galerie", loggedInMiddleware, controllers.HandleGallery)
	app.Get("/a-propos", loggedInMiddleware, controllers.HandleAbout)

	// Checkout GET fallback and redirect targets
	app.Get("/paiement/demarrer", loggedInMiddleware, controllers.HandleDonationStart)
	app.Get("/paiement/succes", loggedInMiddleware, controllers.HandleDonationSuccess)
	app.Get("/paiement/annule", loggedInMiddleware, controllers.HandleDonationCancel)

	// Auth
	app.Post("/deconnexion", middleware.RequireStaff, controllers.HandleAuthLogout)

	// Payment provider webhooks (no CSRF, signature-verified in the service)
	app.Post("/webhooks/fedapay", controllers.HandleFedaPayWebhook)
}
