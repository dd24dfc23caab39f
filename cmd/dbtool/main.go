package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/platform/db"
)

// dbtool initializes the trip store schema on a Postgres deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	store, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(store); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
