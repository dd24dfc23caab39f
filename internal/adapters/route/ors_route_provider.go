package route

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
)

const metersPerMile = 1609.344

// ORSRouteProvider computes trip legs with OpenRouteService heavy-goods
// directions. Requests are retried with backoff; if the API stays
// unreachable the provider degrades to a haversine estimate so trip planning
// keeps working offline.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session  *http.Client
	apiKey   string
	baseURL  string
	profile  string
	fallback *HaversineRouteProvider
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session:  &http.Client{Timeout: 15 * time.Second},
		apiKey:   apiKey,
		baseURL:  "https://api.openrouteservice.org",
		profile:  "driving-hgv",
		fallback: NewHaversineRouteProvider(),
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

// GetRoute returns one leg per consecutive waypoint pair. Distances come
// from the ORS truck profile; on persistent API failure the haversine
// fallback answers instead.
func (o *ORSRouteProvider) GetRoute(ctx context.Context, waypoints []domain.Coordinates) (_ []domain.TripLeg, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("ors route: need at least 2 waypoints, got %d", len(waypoints))
	}

	legs, apiErr := o.fetchDirections(ctx, waypoints)
	if apiErr == nil {
		return legs, nil
	}
	if ctx.Err() != nil {
		return nil, apiErr
	}

	log.Printf("ors directions failed, using haversine fallback: %v", apiErr)
	return o.fallback.GetRoute(ctx, waypoints)
}

func (o *ORSRouteProvider) fetchDirections(ctx context.Context, waypoints []domain.Coordinates) ([]domain.TripLeg, error) {
	endpoint := o.baseURL + "/v2/directions/" + o.profile

	coords := make([][]float64, 0, len(waypoints))
	for _, wp := range waypoints {
		coords = append(coords, []float64{wp.Lon, wp.Lat})
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords, Units: "m"})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("execute directions request: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return nil, errors.New("no routes in directions response")
	}

	route := decoded.Routes[0]
	if len(route.Segments) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"directions returned %d segments for %d waypoints",
			len(route.Segments), len(waypoints),
		)
	}

	legs := make([]domain.TripLeg, 0, len(route.Segments))
	for i, seg := range route.Segments {
		legs = append(legs, domain.TripLeg{
			Start:         waypoints[i],
			End:           waypoints[i+1],
			DistanceMiles: seg.Distance / metersPerMile,
		})
	}
	return legs, nil
}
