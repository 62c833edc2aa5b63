//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hugh/go-smscms/internal/auth"
	"github.com/hugh/go-smscms/internal/contacts"
	"github.com/hugh/go-smscms/internal/database"
	"github.com/hugh/go-smscms/pkg/config"
	"github.com/hugh/go-smscms/pkg/util"
	"github.com/joho/godotenv"
)

const sampleContacts = `nombre;telefono
Ana García;5551234001
Luis Pérez;5551234002
María López;5551234003
`

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()

	jwtService, err := auth.NewJWTService(&cfg.JWT)
	if err != nil {
		log.Fatalf("failed to create token service: %v", err)
	}
	authService := auth.NewService(database.NewUserStore(db), auth.NewBcryptHasher(cfg.Auth.BcryptCost), logger)

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin1234"
	}

	user, err := authService.SignUp(ctx, email, password)
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		fmt.Printf("Admin user already exists: %s\n", email)
		return
	case err != nil:
		log.Fatalf("failed to create admin user: %v", err)
	}

	token, err := jwtService.Issue(user.ID)
	if err != nil {
		log.Fatalf("failed to issue token: %v", err)
	}

	result := contacts.NewService(database.NewContactStore(db), logger).Ingest(ctx, sampleContacts)

	fmt.Printf("Admin user created successfully!\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Contacts seeded: %d (skipped %d)\n", len(result.Created), len(result.Skipped))
	fmt.Printf("Token: %s\n", token)
}
