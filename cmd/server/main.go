package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/internal/api"
	"github.com/hugh/go-smscms/internal/auth"
	"github.com/hugh/go-smscms/internal/contacts"
	"github.com/hugh/go-smscms/internal/database"
	"github.com/hugh/go-smscms/internal/messages"
	"github.com/hugh/go-smscms/internal/tasks"
	"github.com/hugh/go-smscms/pkg/config"
	"github.com/hugh/go-smscms/pkg/queue"
	"github.com/hugh/go-smscms/pkg/util"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting SMS CMS server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	if !cfg.Server.IsDevelopment() && cfg.JWT.Secret == "super-secret-key" {
		logger.Warn("JWT_SECRET is the built-in default, set a real secret outside development")
	}

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Token service
	jwtService, err := auth.NewJWTService(&cfg.JWT)
	if err != nil {
		logger.Error("failed to create token service", "error", err)
		os.Exit(1)
	}

	// Redis and the task queue are only needed for simulated dispatch
	var redisClient *redis.Client
	var asynqClient *asynq.Client
	var messageOpts []messages.Option
	if cfg.Dispatch.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("failed to connect to Redis, dispatch disabled", "error", err)
			redisClient.Close()
			redisClient = nil
		} else {
			asynqClient = queue.NewClient(&cfg.Redis)
			messageOpts = append(messageOpts, messages.WithDispatcher(
				tasks.NewEnqueuer(asynqClient, cfg.Dispatch.Queue, logger),
			))
		}
	}

	// Initialize services
	userStore := database.NewUserStore(db)
	contactStore := database.NewContactStore(db)
	messageStore := database.NewMessageStore(db)

	authService := auth.NewService(userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)
	contactService := contacts.NewService(contactStore, logger)
	messageService := messages.NewService(messageStore, contactStore, logger, messageOpts...)

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Tokens:         jwtService,
		TokenTTL:       jwtService.Expiry(),
		AuthService:    authService,
		ContactService: contactService,
		MessageService: messageService,
		UploadMaxBytes: cfg.Upload.MaxBytes,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr(), "dispatch", asynqClient != nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if asynqClient != nil {
		asynqClient.Close()
	}

	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
