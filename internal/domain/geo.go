package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoordinate is returned when latitude or longitude is outside
	// its valid range. Scoring never runs on such input.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidCategoricalValue is returned for a soil type, tectonic activity
	// or geological stability label outside its enumerated set.
	ErrInvalidCategoricalValue = errors.New("invalid categorical value")
)

// GeoPoint is a WGS-84 latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports ErrInvalidCoordinate for latitudes outside [-90, 90] or
// longitudes outside [-180, 180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}
