package router

import (
	"github.com/enfantsenjoie/eejsite/app/controllers"
	"github.com/enfantsenjoie/eejsite/internal/pkg/middleware"
	"github.com/enfantsenjoie/eejsite/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire controllers to the repository factory and domain services
	controllers.InitializeControllers()

	h.registerPublicRoutes(app)
	h.registerAdminRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}

func loggedInMiddleware(c *fiber.Ctx) error {
	// UserContextMiddleware already set all user context; nothing extra to do
	return c.Next()
}
