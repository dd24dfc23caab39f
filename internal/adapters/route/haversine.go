package route

import (
	"context"
	"fmt"
	"math"

	"eld-trip-service/internal/domain"
)

const earthRadiusMiles = 3958.8

// Road routes are longer than great-circle distance; the same uplift the
// fallback path of the original routing service applied.
const roadCurveFactor = 1.2

// HaversineRouteProvider estimates legs from great-circle distance. It backs
// the ORS provider when the external API is unreachable and serves offline
// CLI runs.
type HaversineRouteProvider struct{}

func NewHaversineRouteProvider() *HaversineRouteProvider {
	return &HaversineRouteProvider{}
}

func (p *HaversineRouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) ([]domain.TripLeg, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("haversine route: need at least 2 waypoints, got %d", len(waypoints))
	}

	legs := make([]domain.TripLeg, 0, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		miles := HaversineMiles(waypoints[i], waypoints[i+1]) * roadCurveFactor
		legs = append(legs, domain.TripLeg{
			Start:         waypoints[i],
			End:           waypoints[i+1],
			DistanceMiles: miles,
		})
	}
	return legs, nil
}

// HaversineMiles returns the great-circle distance between two coordinates.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
