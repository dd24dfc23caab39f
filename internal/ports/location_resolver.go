package ports

import (
	"context"

	"eld-trip-service/internal/domain"
)

// Contract for reverse-geocoding a coordinate to a place name.
// Failures degrade to an unknown place and are never fatal to synthesis.
type LocationResolver interface {
	Resolve(ctx context.Context, coord domain.Coordinates) (domain.Place, error)
}

// PlaceCache is a lookaside cache in front of a LocationResolver,
// keyed by rounded coordinates.
type PlaceCache interface {
	Get(ctx context.Context, key string) (domain.Place, bool, error)
	Put(ctx context.Context, key string, place domain.Place) error
}
