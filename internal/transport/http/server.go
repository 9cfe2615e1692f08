package http

import (
	"fmt"
	"log"
	stdhttp "net/http"

	"github.com/rs/cors"

	"earthlink/internal/config"
	"earthlink/internal/database"
	"earthlink/internal/handler"
	"earthlink/internal/repository"
	"earthlink/internal/service"
)

// Run wires the application together and serves HTTP until failure.
// Schema migrations are applied separately by cmd/migrate before the server
// accepts traffic.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	postRepo := repository.NewPostRepository(db)
	eventRepo := repository.NewEventRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	authService := service.NewAuthService(userRepo, sessionRepo)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo)
	eventService := service.NewEventService(eventRepo)
	groupService := service.NewGroupService(groupRepo)
	feedService := service.NewFeedService(postRepo, eventRepo)
	searchService := service.NewSearchService(eventRepo, groupRepo)

	router := NewRouter(RouterConfig{
		AuthHandler:   handler.NewAuthHandler(authService, cfg),
		UserHandler:   handler.NewUserHandler(userService),
		PostHandler:   handler.NewPostHandler(postService),
		EventHandler:  handler.NewEventHandler(eventService),
		GroupHandler:  handler.NewGroupHandler(groupService),
		FeedHandler:   handler.NewFeedHandler(feedService),
		SearchHandler: handler.NewSearchHandler(searchService),
		HealthHandler: handler.NewHealthHandler(db),
		Sessions:      authService,
		Config:        cfg,
	})

	// The React client is served from a different origin and authenticates
	// with the session cookie, so CORS must allow credentials.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.ClientOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, corsHandler)
}
