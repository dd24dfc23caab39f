package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
)

// ORSLocationResolver reverse-geocodes coordinates with OpenRouteService
// (/geocode/reverse), consulting a lookaside place cache first. Resolution
// failures are reported to the caller, who degrades to an unknown place;
// they are never fatal.
type ORSLocationResolver struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   ports.PlaceCache
}

func NewORSLocationResolver(apiKey string, cache ports.PlaceCache) (*ORSLocationResolver, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSLocationResolver{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		cache:   cache,
	}, nil
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			Locality string `json:"locality"`
			Region   string `json:"region"`
			Label    string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

func (o *ORSLocationResolver) Resolve(ctx context.Context, coord domain.Coordinates) (_ domain.Place, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	key := coord.CacheKey()
	if o.cache != nil {
		place, ok, err := o.cache.Get(ctx, key)
		if err != nil {
			log.Printf("place cache read failed: %v", err)
		} else if ok {
			return place, nil
		}
	}

	place, err := o.fetchReverse(ctx, coord)
	if err != nil {
		return domain.Place{}, fmt.Errorf("reverse geocode %s: %w", key, err)
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, key, place); err != nil {
			log.Printf("place cache write failed: %v", err)
		}
	}

	return place, nil
}

func (o *ORSLocationResolver) fetchReverse(ctx context.Context, coord domain.Coordinates) (domain.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/geocode/reverse", nil)
	if err != nil {
		return domain.Place{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	q.Set("point.lat", fmt.Sprintf("%f", coord.Lat))
	q.Set("point.lon", fmt.Sprintf("%f", coord.Lon))
	q.Set("size", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := o.session.Do(req)
	if err != nil {
		return domain.Place{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Place{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Place{}, fmt.Errorf("decode reverse response: %w", err)
	}
	if len(decoded.Features) == 0 {
		return domain.Place{}, errors.New("no reverse geocode results")
	}

	props := decoded.Features[0].Properties
	return domain.Place{
		City:             props.Locality,
		State:            props.Region,
		FormattedAddress: props.Label,
	}, nil
}
