package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/hugh/go-smscms/internal/database"
	"github.com/hugh/go-smscms/internal/messages"
	"github.com/hugh/go-smscms/internal/tasks"
	"github.com/hugh/go-smscms/pkg/config"
	"github.com/hugh/go-smscms/pkg/queue"
	"github.com/hugh/go-smscms/pkg/util"
	"github.com/joho/godotenv"
)

// The worker simulates message delivery. It consumes the dispatch queue
// filled by the server when DISPATCH_ENABLED is set.
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

	logger.Info("starting SMS CMS dispatch worker", "queue", cfg.Dispatch.Queue)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	messageService := messages.NewService(
		database.NewMessageStore(db),
		database.NewContactStore(db),
		logger,
	)

	// Create Asynq server
	srv := queue.NewServer(&cfg.Redis, &cfg.Dispatch)

	// Create task handler
	handler := tasks.NewHandler(messageService, logger)

	// Register handlers
	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	// Handle shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down worker...")
		srv.Shutdown()
		cancel()
	}()

	logger.Info("worker started, waiting for tasks...")

	// Start the server
	if err := srv.Run(mux); err != nil {
		logger.Error("worker error", "error", err)
		cancel()
	}

	// Wait for context cancellation
	<-ctx.Done()

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("worker stopped")
}
