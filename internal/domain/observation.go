package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ObservationRecord is the JSON observation accepted on the source topic,
// by the predict API and by the CLI. Flood and earthquake fields share one
// record; Hazard selects which are read.
type ObservationRecord struct {
	Hazard         Hazard     `json:"hazard,omitempty"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	PlaceName      string     `json:"place_name,omitempty"`
	PredictionTime *time.Time `json:"prediction_time,omitempty"`
	HoursAhead     int        `json:"hours_ahead,omitempty"`

	// Flood.
	Temperature      *float64 `json:"temperature,omitempty"`
	Humidity         *float64 `json:"humidity,omitempty"`
	Precipitation24h *float64 `json:"precipitation_24h,omitempty"`
	Precipitation48h *float64 `json:"precipitation_48h,omitempty"`
	WindSpeed        *float64 `json:"wind_speed,omitempty"`
	WaterLevel       *float64 `json:"water_level,omitempty"`
	RiverFlow        *float64 `json:"river_flow,omitempty"`
	Elevation        *float64 `json:"elevation,omitempty"`
	SoilType         SoilType `json:"soil_type,omitempty"`

	// Earthquake.
	RecentEarthquakes   *int                `json:"recent_earthquakes,omitempty"`
	MaxMagnitude30d     *float64            `json:"max_magnitude_30d,omitempty"`
	AvgMagnitude30d     *float64            `json:"avg_magnitude_30d,omitempty"`
	AverageMagnitude    *float64            `json:"average_magnitude,omitempty"` // alias of avg_magnitude_30d
	AvgDepth            *float64            `json:"avg_depth,omitempty"`
	FaultDistance       *float64            `json:"fault_distance,omitempty"`
	TectonicActivity    TectonicActivity    `json:"tectonic_activity,omitempty"`
	GeologicalStability GeologicalStability `json:"geological_stability,omitempty"`
	PopulationDensity   *float64            `json:"population_density,omitempty"`
}

// DecodeObservation parses an observation JSON document. Invalid categorical
// labels fail here with ErrInvalidCategoricalValue.
func DecodeObservation(data []byte) (ObservationRecord, error) {
	rec, err := unmarshalObservation(data)
	if err != nil {
		return ObservationRecord{}, err
	}
	if rec.Hazard != "" {
		h, err := ParseHazard(string(rec.Hazard))
		if err != nil {
			return ObservationRecord{}, err
		}
		rec.Hazard = h
	}
	return rec, nil
}

// DecodeObservationAs parses an observation to be scored as hazard h. Any
// hazard named in the document is ignored.
func DecodeObservationAs(data []byte, h Hazard) (ObservationRecord, error) {
	rec, err := unmarshalObservation(data)
	if err != nil {
		return ObservationRecord{}, err
	}
	rec.Hazard = h
	return rec, nil
}

func unmarshalObservation(data []byte) (ObservationRecord, error) {
	var rec ObservationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ObservationRecord{}, fmt.Errorf("decode observation: %w", err)
	}
	return rec, nil
}

// HasCoordinates reports whether both latitude and longitude are present.
func (r ObservationRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

func (r ObservationRecord) location() (GeoPoint, error) {
	if !r.HasCoordinates() {
		return GeoPoint{}, fmt.Errorf("%w: latitude and longitude are required", ErrInvalidCoordinate)
	}
	p := GeoPoint{Latitude: *r.Latitude, Longitude: *r.Longitude}
	return p, p.Validate()
}

func (r ObservationRecord) horizon() Horizon {
	h := Horizon{HoursAhead: r.HoursAhead}
	if r.PredictionTime != nil {
		h.PredictionTime = *r.PredictionTime
	}
	return h
}

// FloodInput extracts the flood fields.
func (r ObservationRecord) FloodInput() (FloodInput, error) {
	loc, err := r.location()
	if err != nil {
		return FloodInput{}, err
	}
	return FloodInput{
		Location:         loc,
		Horizon:          r.horizon(),
		Temperature:      r.Temperature,
		Humidity:         r.Humidity,
		Precipitation24h: r.Precipitation24h,
		Precipitation48h: r.Precipitation48h,
		WindSpeed:        r.WindSpeed,
		WaterLevel:       r.WaterLevel,
		RiverFlow:        r.RiverFlow,
		Elevation:        r.Elevation,
		SoilType:         r.SoilType,
	}, nil
}

// EarthquakeInput extracts the earthquake fields. avg_magnitude_30d wins over
// its average_magnitude alias when both are present.
func (r ObservationRecord) EarthquakeInput() (EarthquakeInput, error) {
	loc, err := r.location()
	if err != nil {
		return EarthquakeInput{}, err
	}
	avg := r.AvgMagnitude30d
	if avg == nil {
		avg = r.AverageMagnitude
	}
	return EarthquakeInput{
		Location:            loc,
		Horizon:             r.horizon(),
		RecentEarthquakes:   r.RecentEarthquakes,
		MaxMagnitude30d:     r.MaxMagnitude30d,
		AvgMagnitude30d:     avg,
		AvgDepthKm:          r.AvgDepth,
		FaultDistanceKm:     r.FaultDistance,
		TectonicActivity:    r.TectonicActivity,
		GeologicalStability: r.GeologicalStability,
		PopulationDensity:   r.PopulationDensity,
	}, nil
}

// SerializeAssessment marshals an assessment for the sink topic, keyed by
// its ID.
func SerializeAssessment(a Assessed) (OutputEvent, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize assessment: %w", err)
	}
	meta := a.Meta()
	return OutputEvent{
		Key:   []byte(meta.ID),
		Value: data,
		Headers: map[string]string{
			"hazard":       string(meta.Hazard),
			"risk_level":   meta.RiskLevel.String(),
			"processed_at": meta.CreatedAt.Format(time.RFC3339),
		},
	}, nil
}
