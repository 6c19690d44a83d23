package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/verdant-studio/portal-api/internal/application/user"
	"github.com/verdant-studio/portal-api/internal/config"
	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/infrastructure/dynamo"
)

// Seeds the initial MASTER account so the admin panel is reachable on a fresh
// deployment. Idempotent: an existing account is left untouched.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")
	}

	cfg := config.Load()
	ctx := context.Background()

	client := dynamo.NewClient(cfg)
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)

	svc := user.NewService(dynamo.NewUserRepo(client, cfg.DynamoTables.Users))

	exists, err := svc.Exists(ctx, email)
	if err != nil {
		log.Fatalf("check existing account: %v", err)
	}
	if exists {
		log.Printf("account %s already exists, nothing to do", email)
		return
	}

	u, err := svc.Create(ctx, domain.CreateUserRequest{
		Email:    email,
		Password: password,
		Name:     "Administrator",
		Role:     domain.RoleMaster,
	})
	if err != nil {
		log.Fatalf("create master account: %v", err)
	}
	log.Printf("created master account %s (id=%s)", u.Email, u.UserID)
}
