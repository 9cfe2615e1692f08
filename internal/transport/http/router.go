package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"earthlink/internal/config"
	"earthlink/internal/handler"
	authmw "earthlink/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	PostHandler   *handler.PostHandler
	EventHandler  *handler.EventHandler
	GroupHandler  *handler.GroupHandler
	FeedHandler   *handler.FeedHandler
	SearchHandler *handler.SearchHandler
	HealthHandler *handler.HealthHandler

	Sessions authmw.SessionResolver
	Config   *config.Config
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	optional := authmw.OptionalSession(cfg.Sessions, cfg.Config.SessionCookieName, cfg.Config.CookieSecure)
	required := authmw.RequireSession(cfg.Sessions, cfg.Config.SessionCookieName, cfg.Config.CookieSecure)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", cfg.HealthHandler.Check)

	// Public routes - no authentication required
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", cfg.AuthHandler.Signup)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/logout", cfg.AuthHandler.Logout)
		r.With(required).Post("/change-password", cfg.AuthHandler.ChangePassword)
	})

	// Public reads with optional authentication: anonymous viewers get
	// viewer-relative flags as false.
	r.Group(func(r chi.Router) {
		r.Use(optional)

		r.Get("/feed", cfg.FeedHandler.GetFeed)
		r.Get("/search", cfg.SearchHandler.Search)
		r.Get("/users/search", cfg.UserHandler.Search)

		r.Get("/posts", cfg.PostHandler.List)
		r.Get("/posts/{id}", cfg.PostHandler.GetByID)
		r.Get("/posts/{id}/replies", cfg.PostHandler.Replies)

		r.Get("/events", cfg.EventHandler.List)
		r.Get("/events/{id}", cfg.EventHandler.GetByID)
		r.Get("/events/{id}/replies", cfg.EventHandler.Replies)

		r.Get("/groups", cfg.GroupHandler.List)
		r.Get("/groups/{id}", cfg.GroupHandler.GetByID)
		r.Get("/groups/{id}/members", cfg.GroupHandler.Members)
	})

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(required)

		r.Get("/profile", cfg.UserHandler.Profile)
		r.Patch("/profile", cfg.UserHandler.UpdateProfile)

		r.Post("/posts", cfg.PostHandler.Create)
		r.Patch("/posts/{id}", cfg.PostHandler.Update)
		r.Delete("/posts/{id}", cfg.PostHandler.Delete)
		r.Post("/posts/{id}/likes", cfg.PostHandler.Like)
		r.Delete("/posts/{id}/likes", cfg.PostHandler.Unlike)
		r.Post("/posts/{id}/replies", cfg.PostHandler.CreateReply)

		r.Post("/events", cfg.EventHandler.Create)
		r.Patch("/events/{id}", cfg.EventHandler.Update)
		r.Delete("/events/{id}", cfg.EventHandler.Delete)
		r.Post("/events/{id}/likes", cfg.EventHandler.Like)
		r.Delete("/events/{id}/likes", cfg.EventHandler.Unlike)
		r.Post("/events/{id}/rsvps", cfg.EventHandler.RSVP)
		r.Delete("/events/{id}/rsvps", cfg.EventHandler.UnRSVP)
		r.Post("/events/{id}/replies", cfg.EventHandler.CreateReply)

		r.Post("/groups", cfg.GroupHandler.Create)
		r.Patch("/groups/{id}", cfg.GroupHandler.Update)
		r.Delete("/groups/{id}", cfg.GroupHandler.Delete)
		r.Post("/groups/{id}/members", cfg.GroupHandler.Join)
		r.Delete("/groups/{id}/members", cfg.GroupHandler.Leave)
	})

	return r
}
