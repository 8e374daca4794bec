package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/api/http/handlers"
	"github.com/spec-kit/auth-gateway/internal/auth"
	"github.com/spec-kit/auth-gateway/internal/domain"
	"github.com/spec-kit/auth-gateway/internal/ws"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Users   *handlers.UsersHandler
	Storage *handlers.StorageHandler
	Gate    *auth.Gate
	Hub     *ws.Hub
	WSPath  string
	Logger  *zap.Logger
}

// RegisterRoutes wires HTTP routes. The request gate runs on every request;
// it bypasses itself on public paths.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/v1/auth")
	authGroup.Post("/signup", cfg.Auth.SignUp)
	authGroup.Post("/signin", cfg.Auth.SignIn)

	users := app.Group("/v1/users", auth.RequireAuthenticated())
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Get("/", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.Deactivate)

	// The file store is public, matching the access policy's /storage prefix.
	app.Post("/storage", cfg.Storage.Upload)
	app.Get("/storage/:filename", cfg.Storage.Serve)
	app.Delete("/storage/:filename", cfg.Storage.Delete)

	app.Use(cfg.WSPath, ws.UpgradeRequired())
	app.Get(cfg.WSPath, ws.Handler(cfg.Hub, cfg.Logger))
}
