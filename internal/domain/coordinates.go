package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// CacheKey returns a stable lookup key rounded to ~11m precision.
// Reverse-geocode results for coordinates this close are interchangeable.
func (c Coordinates) CacheKey() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Place is a reverse-geocoded location, resolved by an external collaborator.
// The zero value means "unknown place" and is always a valid degradation.
type Place struct {
	City             string `json:"city"`
	State            string `json:"state"`
	FormattedAddress string `json:"formatted_address"`
}

func (p Place) IsZero() bool {
	return p.City == "" && p.State == "" && p.FormattedAddress == ""
}
