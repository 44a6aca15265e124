package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// assessmentNamespace scopes the name-based UUIDs issued for assessments.
var assessmentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/hazard-risk-service/assessment"))

// Assessment holds the fields shared by flood and earthquake results.
type Assessment struct {
	ID              string    `json:"id"`
	Hazard          Hazard    `json:"hazard"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	RiskLevel       RiskLevel `json:"risk_level"`
	ConfidenceScore float64   `json:"confidence_score"`
	Factors         []string  `json:"factors"`
	PredictionTime  time.Time `json:"prediction_time"`
	HoursAhead      int       `json:"hours_ahead"`
	ModelVersion    string    `json:"model_version"`

	// Geocoding enrichment fields.
	PlaceName        string  `json:"place_name,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "reverse", "original", "failed"

	CreatedAt time.Time `json:"created_at"`
}

// Meta returns the shared fields.
func (a Assessment) Meta() Assessment { return a }

// FloodAssessment is the result of Engine.AssessFlood.
type FloodAssessment struct {
	Assessment
	FloodProbability float64 `json:"flood_probability"`
}

// EarthquakeAssessment is the result of Engine.AssessEarthquake.
type EarthquakeAssessment struct {
	Assessment
	RiskProbability    float64 `json:"risk_probability"`
	EstimatedMagnitude float64 `json:"estimated_magnitude"`
}

// Assessed is implemented by both hazard results.
type Assessed interface {
	Meta() Assessment
}

// buildAssessment fills the shared fields. Timestamps come from now; the
// horizon is echoed as given.
func buildAssessment(h Hazard, loc GeoPoint, hz Horizon, level RiskLevel, conf float64, version string, now time.Time) Assessment {
	predicted := hz.PredictionTime
	if predicted.IsZero() {
		predicted = now
	}
	predicted = predicted.UTC()
	return Assessment{
		ID:              assessmentID(h, loc, predicted, version),
		Hazard:          h,
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		RiskLevel:       level,
		ConfidenceScore: conf,
		PredictionTime:  predicted,
		HoursAhead:      hz.hours(),
		ModelVersion:    version,
		CreatedAt:       now.UTC(),
	}
}

// assessmentID derives a UUIDv5 from the assessment's identifying fields so
// replays of the same observation produce the same key downstream.
func assessmentID(h Hazard, loc GeoPoint, predicted time.Time, version string) string {
	name := fmt.Sprintf("%s|%.6f|%.6f|%s|%s", h, loc.Latitude, loc.Longitude, predicted.Format(time.RFC3339Nano), version)
	return uuid.NewSHA1(assessmentNamespace, []byte(name)).String()
}
