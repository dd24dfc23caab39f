package route

import (
	"context"
	"fmt"

	"eld-trip-service/internal/domain"
)

// MockRouteProvider answers with fixed per-pair distances, keyed by
// coordinate cache keys.
type MockRouteProvider struct {
	m map[string]float64
}

type MockLeg struct {
	From, To domain.Coordinates
	Miles    float64
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]float64, len(legs))
	for _, l := range legs {
		m[l.From.CacheKey()+"|"+l.To.CacheKey()] = l.Miles
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) ([]domain.TripLeg, error) {
	if len(waypoints) < 2 {
		return nil, fmt.Errorf("mock route: need at least 2 waypoints, got %d", len(waypoints))
	}

	legs := make([]domain.TripLeg, 0, len(waypoints)-1)
	for i := 0; i < len(waypoints)-1; i++ {
		key := waypoints[i].CacheKey() + "|" + waypoints[i+1].CacheKey()
		miles, ok := p.m[key]
		if !ok {
			return nil, fmt.Errorf("missing pair %q", key)
		}
		legs = append(legs, domain.TripLeg{
			Start:         waypoints[i],
			End:           waypoints[i+1],
			DistanceMiles: miles,
		})
	}
	return legs, nil
}
