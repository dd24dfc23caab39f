package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/adapters/geocode"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/route"
	"eld-trip-service/internal/api"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, ORS, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	store, postgres, err := openStore()
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	if err := repositories.InitSchema(store); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLTripRepository(store)
	if postgres {
		repo = repositories.NewPostgresTripRepository(store)
	}
	routes, resolver := buildORS()

	router := api.NewRouter(repo, routes, resolver)

	// Timeouts are tuned for cold-cache planning (external routing latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStore prefers Postgres when DATABASE_URL is set and falls back to a
// local SQLite file otherwise.
func openStore() (*sql.DB, bool, error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		store, err := db.Open(databaseURL)
		return store, true, err
	}

	dbPath := config.Get("DB_PATH", "data/trips.db")
	store, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, false, err
	}
	if err := store.Ping(); err != nil {
		return nil, false, err
	}
	return store, false, nil
}

// buildORS wires the routing and reverse-geocoding collaborators. Without an
// API key the service still plans trips: routing degrades to the haversine
// estimate and place names are omitted from remarks.
func buildORS() (ports.RouteProvider, ports.LocationResolver) {
	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if orsKey == "" {
		log.Println("ORS_API_KEY not set; using haversine distances and no place names")
		return route.NewHaversineRouteProvider(), nil
	}

	routes, err := route.NewORSRouteProvider(orsKey)
	if err != nil {
		log.Fatal(err)
	}

	var placeCache ports.PlaceCache
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		placeCache = cache.NewRedisPlaceCache(client)
	}

	resolver, err := geocode.NewORSLocationResolver(orsKey, placeCache)
	if err != nil {
		log.Fatal(err)
	}

	return routes, resolver
}
