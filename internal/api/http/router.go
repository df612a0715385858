package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/http/handlers"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Each protected route declares its
// required role set explicitly; the guard chain is always authentication
// first, then role authorization.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Accounts.Signup)
	authGroup.Post("/login", cfg.Accounts.Login)

	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, auth.RequireRoles(), cfg.Accounts.Logout)

	admin := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireRoles(domain.RoleAdmin))
	admin.Patch("/update/:id", cfg.Accounts.Update)
	admin.Get("/users", cfg.Accounts.List)
	admin.Delete("/users/:id", cfg.Accounts.Delete)
}
