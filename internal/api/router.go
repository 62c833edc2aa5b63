package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hugh/go-smscms/internal/api/handlers"
	"github.com/hugh/go-smscms/internal/api/middleware"
	"github.com/hugh/go-smscms/internal/auth"
	"github.com/hugh/go-smscms/internal/contacts"
	"github.com/hugh/go-smscms/internal/messages"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client // optional, health only
	Logger         *slog.Logger
	Tokens         auth.TokenService
	TokenTTL       time.Duration
	AuthService    auth.Authenticator
	ContactService *contacts.Service
	MessageService *messages.Service
	UploadMaxBytes int64
	AllowedOrigins []string // CORS allowed origins
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// CORS - any origin unless restricted by configuration
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Auth-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Tokens, cfg.TokenTTL, cfg.Logger)
	contactHandler := handlers.NewContactHandler(cfg.ContactService, cfg.UploadMaxBytes, cfg.Logger)
	messageHandler := handlers.NewMessageHandler(cfg.MessageService, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	requireAuth := middleware.Auth(cfg.Tokens)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", authHandler.Me)
			r.Post("/deactivate", authHandler.Deactivate)
		})
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", contactHandler.List)
		r.Post("/", contactHandler.Create)
		r.Post("/upload", contactHandler.Upload)
	})

	r.Route("/messages", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", messageHandler.List)
		r.Post("/", messageHandler.Create)
		r.Put("/{id}/status", messageHandler.UpdateStatus)
	})

	return &Router{r}
}
