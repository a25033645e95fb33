package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/livara/chat-service/internal/api/http/handlers"
	"github.com/livara/chat-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Teams          *handlers.TeamsHandler
	Widget         *handlers.WidgetHandler
	Conversations  *handlers.ConversationsHandler
	LLM            *handlers.LLMHandler
	Documents      *handlers.DocumentsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	// Public widget surface: gated by the widget API key, not sessions.
	public := api.Group("/public/widget")
	public.Get("/config", cfg.Widget.PublicConfig)
	public.Post("/chat", cfg.Widget.PublicChat)
	public.Post("/contact", cfg.Widget.PublicContact)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Get("/verify", cfg.Auth.Verify)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	session := authGroup.Group("", cfg.AuthMiddleware.Authenticate, auth.RequireAuthenticated())
	session.Post("/logout", cfg.Auth.Logout)
	session.Get("/profile", cfg.Auth.GetProfile)
	session.Put("/profile", cfg.Auth.UpdateProfile)
	session.Post("/password/change", cfg.Auth.ChangePassword)

	admin := api.Group("/admin", cfg.AuthMiddleware.Authenticate, auth.RequireAdmin())
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Put("/users/:id", cfg.Users.Update)
	admin.Delete("/users/:id", cfg.Users.Deactivate)
	admin.Get("/teams", cfg.Teams.List)
	admin.Post("/teams", cfg.Teams.Create)
	admin.Get("/teams/:id", cfg.Teams.Get)
	admin.Put("/teams/:id", cfg.Teams.Update)
	admin.Delete("/teams/:id", cfg.Teams.Delete)
	admin.Get("/llm-settings", cfg.LLM.GetSettings)
	admin.Put("/llm-settings", cfg.LLM.SaveSettings)
	admin.Put("/documents/:id/review", cfg.Documents.Review)

	// Team-scoped dashboard surface: admins, or members attached to a team.
	scoped := api.Group("", cfg.AuthMiddleware.Authenticate, auth.RequireTeamScoped())
	scoped.Get("/widget/keys", cfg.Widget.ListKeys)
	scoped.Post("/widget/keys", cfg.Widget.CreateKey)
	scoped.Put("/widget/keys/:id", cfg.Widget.UpdateKey)
	scoped.Delete("/widget/keys/:id", cfg.Widget.DeleteKey)
	scoped.Get("/widget/config", cfg.Widget.GetConfig)
	scoped.Put("/widget/config", cfg.Widget.SaveConfig)
	scoped.Post("/chat", cfg.Conversations.Chat)
	scoped.Get("/conversations", cfg.Conversations.List)
	scoped.Get("/conversations/stats", cfg.Conversations.Stats)
	scoped.Get("/contacts", cfg.Conversations.Contacts)

	documents := api.Group("/documents", cfg.AuthMiddleware.Authenticate, auth.RequireAuthenticated())
	documents.Post("", cfg.Documents.Upload)
	documents.Get("", cfg.Documents.List)
}
