package domain

import "time"

const (
	// DefaultHoursAhead is the forecast horizon echoed when the caller gives none.
	DefaultHoursAhead = 24
	MaxHoursAhead     = 168
)

// Horizon is the caller's forecast window. It is echoed on the assessment,
// never used in scoring.
type Horizon struct {
	PredictionTime time.Time // zero means "now" on the engine clock
	HoursAhead     int       // zero means DefaultHoursAhead
}

// hours returns HoursAhead defaulted and clamped into [1, MaxHoursAhead].
func (h Horizon) hours() int {
	switch {
	case h.HoursAhead == 0:
		return DefaultHoursAhead
	case h.HoursAhead < 1:
		return 1
	case h.HoursAhead > MaxHoursAhead:
		return MaxHoursAhead
	default:
		return h.HoursAhead
	}
}

// FloodInput holds hydrological and meteorological observations for a point.
// A nil pointer means the value was not reported, which is distinct from zero.
type FloodInput struct {
	Location GeoPoint
	Horizon

	Temperature      *float64 // °C
	Humidity         *float64 // %
	Precipitation24h *float64 // mm
	Precipitation48h *float64 // mm
	WindSpeed        *float64 // m/s
	WaterLevel       *float64 // m
	RiverFlow        *float64 // m³/s
	Elevation        *float64 // m
	SoilType         SoilType
}

// EarthquakeInput holds seismic and geological context for a point.
type EarthquakeInput struct {
	Location GeoPoint
	Horizon

	RecentEarthquakes   *int     // events in the last 30 days
	MaxMagnitude30d     *float64 // strongest event in the last 30 days
	AvgMagnitude30d     *float64
	AvgDepthKm          *float64
	FaultDistanceKm     *float64
	TectonicActivity    TectonicActivity
	GeologicalStability GeologicalStability

	// PopulationDensity is carried for the caller and does not affect risk.
	PopulationDensity *float64
}

// Ptr returns a pointer to v. Handy for building inputs with optional fields.
func Ptr[T any](v T) *T {
	return &v
}
