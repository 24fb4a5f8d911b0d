package router

import (
	"strings"
	"time"

	"github.com/enfantsenjoie/eejsite/app/controllers"
	"github.com/enfantsenjoie/eejsite/internal/pkg/env"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/webhooks/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", loggedInMiddleware, controllers.HandleStart)
	group.Get("/donner", loggedInMiddleware, controllers.HandleDonate)
	group.Post("/paiement/demarrer", loggedInMiddleware, controllers.HandleDonationStart)
	group.Get("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Post("/contact", loggedInMiddleware, controllers.HandleContact)
	group.Get("/connexion", loggedInMiddleware, controllers.HandleAuthLogin)
	group.Post("/connexion", loggedInMiddleware, controllers.HandleAuthLogin)
}
