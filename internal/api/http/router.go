package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/happyfarm/internal/api/http/handlers"
	"github.com/spec-kit/happyfarm/internal/auth"
	"github.com/spec-kit/happyfarm/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix      string
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Animals        *handlers.AnimalsHandler
	Farm           *handlers.FarmHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *auth.LoginLimiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = "/api"
	}
	api := app.Group(prefix)

	throttle := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.LoginLimiter != nil {
		throttle = cfg.LoginLimiter.Handle
	}
	api.Post("/register", throttle, cfg.Users.Register)
	api.Post("/login", throttle, cfg.Users.Login)

	// Group middleware applies to every route registered after it under the prefix.
	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/logout", cfg.Users.Logout)
	protected.Get("/user", cfg.Users.Me)

	protected.Get("/animals", cfg.Animals.List)
	protected.Post("/animals", cfg.Animals.Create)
	protected.Get("/animals/:id", cfg.Animals.Get)
	protected.Post("/animals/:id/feed", cfg.Animals.Feed)
	protected.Post("/animals/:id/groom", cfg.Animals.Groom)
	protected.Post("/animals/:id/sacrifice", cfg.Animals.Sacrifice)

	protected.Get("/farm", cfg.Farm.Show)
	protected.Get("/farm/statistics", cfg.Farm.Statistics)
}
