package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves place names and coordinates.
type Geocoder interface {
	// ForwardGeocode converts a free-form place name to coordinates.
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)

	// ReverseGeocode converts coordinates to place details.
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}

// Placement records how an observation's location was resolved.
type Placement struct {
	PlaceName        string
	FormattedAddress string
	Confidence       float64
	Source           string // "forward", "failed", "original", or empty when not attempted
}
