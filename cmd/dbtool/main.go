package main

import (
	"context"
	"database/sql"
	"log"
	"meal-delivery-service/internal/adapters/repositories"
	"meal-delivery-service/internal/config"
	"meal-delivery-service/internal/platform/db"
	"strings"
)

func main() {
	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	initAndSeed(conn, cfg.SeedPath)
}

func initAndSeed(conn *sql.DB, seedPath string) {
	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, repositories.Postgres, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
