package ports

import (
	"context"

	"eld-trip-service/internal/domain"
)

// Port: a boundary for storing and retrieving computed trips.
type TripRepository interface {
	// Persist a finished trip and return its assigned ID.
	SaveTrip(ctx context.Context, trip *domain.Trip) (string, error)
	// Retrieve one trip by ID; returns nil when the trip does not exist.
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)
	// Retrieve the most recent trips, newest first.
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
}
