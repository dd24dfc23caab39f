package api

import (
	"net/http"

	"eld-trip-service/internal/api/handlers"
	"eld-trip-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.TripRepository, routes ports.RouteProvider, resolver ports.LocationResolver) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Repo:     repo,
		Routes:   routes,
		Resolver: resolver,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("POST /api/trips/plan", tripHandler.Plan)
	mux.HandleFunc("GET /api/trips", tripHandler.List)
	mux.HandleFunc("GET /api/trips/{id}", tripHandler.Get)
	mux.HandleFunc("POST /api/rolling-hours", handlers.RollingHours)

	return loggingMiddleware(mux)
}
