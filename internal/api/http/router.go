package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/http/handlers"
	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Assets         *handlers.AssetsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// NewApp builds the fiber application with global middlewares and routes.
func NewApp(appName string, mw MiddlewareConfig, routes RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler(mw.Logger),
	})
	RegisterMiddlewares(app, mw)
	RegisterRoutes(app, routes)
	return app
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	route := observability.Matched

	app.Get("/health/live", route(cfg.Health.Live))
	app.Get("/health/ready", route(cfg.Health.Ready))
	app.Get("/metrics", route(cfg.Health.Metrics))

	api := app.Group("/api")
	api.Post("/token", route(cfg.Auth.Token))

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/me", route(cfg.Auth.Me))
	protected.Get("/assets", route(cfg.Assets.List))
	protected.Get("/asset/:id", route(cfg.Assets.Get))
	protected.Post("/asset", route(cfg.Assets.Create))
	protected.Put("/asset/:id", route(cfg.Assets.Update))
}
