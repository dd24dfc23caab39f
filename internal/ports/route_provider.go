package ports

import (
	"context"

	"eld-trip-service/internal/domain"
)

// Contract for computing the driving legs between ordered trip waypoints.
type RouteProvider interface {
	// Return one leg per consecutive waypoint pair, in waypoint order.
	GetRoute(ctx context.Context, waypoints []domain.Coordinates) ([]domain.TripLeg, error)
}
