package domain

import (
	"errors"
	"fmt"
	"math"
)

// ModelVersion is bumped whenever the default weights or thresholds change.
const ModelVersion = "1.0"

// Amplification is the convex curve gain · n^exponent applied to the
// dominant terms of each model.
type Amplification struct {
	Gain     float64 `yaml:"gain"`
	Exponent float64 `yaml:"exponent"`
}

func (a Amplification) apply(n float64) float64 {
	if n <= 0 {
		return 0
	}
	return a.Gain * math.Pow(n, a.Exponent)
}

// FloodWeights sum to 1.
type FloodWeights struct {
	Precipitation24h float64 `yaml:"precipitation_24h"`
	Precipitation48h float64 `yaml:"precipitation_48h"`
	WaterLevel       float64 `yaml:"water_level"`
	RiverFlow        float64 `yaml:"river_flow"`
	Elevation        float64 `yaml:"elevation"`
	SoilDrainage     float64 `yaml:"soil_drainage"`
	WindSpeed        float64 `yaml:"wind_speed"`
}

func (w FloodWeights) values() []float64 {
	return []float64{w.Precipitation24h, w.Precipitation48h, w.WaterLevel, w.RiverFlow, w.Elevation, w.SoilDrainage, w.WindSpeed}
}

type FloodModel struct {
	Weights       FloodWeights  `yaml:"weights"`
	Amplification Amplification `yaml:"amplification"`
}

// EarthquakeWeights sum to 1.
type EarthquakeWeights struct {
	RecentEarthquakes   float64 `yaml:"recent_earthquakes"`
	MaxMagnitude        float64 `yaml:"max_magnitude_30d"`
	AvgMagnitude        float64 `yaml:"avg_magnitude_30d"`
	AvgDepth            float64 `yaml:"avg_depth"`
	FaultDistance       float64 `yaml:"fault_distance"`
	TectonicActivity    float64 `yaml:"tectonic_activity"`
	GeologicalStability float64 `yaml:"geological_stability"`
}

func (w EarthquakeWeights) values() []float64 {
	return []float64{w.RecentEarthquakes, w.MaxMagnitude, w.AvgMagnitude, w.AvgDepth, w.FaultDistance, w.TectonicActivity, w.GeologicalStability}
}

// MagnitudeModel blends recent magnitudes with the risk probability:
//
//	max·Max + avg·Avg + (8·probability)·Probability
//
// DefaultAvg stands in for an unreported average magnitude.
type MagnitudeModel struct {
	Max         float64 `yaml:"max"`
	Avg         float64 `yaml:"avg"`
	Probability float64 `yaml:"probability"`
	DefaultAvg  float64 `yaml:"default_avg"`
}

type EarthquakeModel struct {
	Weights       EarthquakeWeights `yaml:"weights"`
	Amplification Amplification     `yaml:"amplification"`
	Interaction   float64           `yaml:"interaction"`
	Magnitude     MagnitudeModel    `yaml:"magnitude"`
}

// Thresholds are the lower edges of the MEDIUM, HIGH and CRITICAL bands.
type Thresholds struct {
	Medium   float64 `yaml:"medium"`
	High     float64 `yaml:"high"`
	Critical float64 `yaml:"critical"`
}

// ModelConfig is the complete, read-only scoring configuration. It holds only
// value fields, so copies never share state.
type ModelConfig struct {
	Version         string          `yaml:"version"`
	Flood           FloodModel      `yaml:"flood"`
	Earthquake      EarthquakeModel `yaml:"earthquake"`
	Thresholds      Thresholds      `yaml:"thresholds"`
	ConfidenceFloor float64         `yaml:"confidence_floor"`
}

// DefaultModelConfig returns the calibrated production coefficients.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Version: ModelVersion,
		Flood: FloodModel{
			Weights: FloodWeights{
				Precipitation24h: 0.30,
				Precipitation48h: 0.24,
				WaterLevel:       0.20,
				RiverFlow:        0.14,
				Elevation:        0.04,
				SoilDrainage:     0.04,
				WindSpeed:        0.04,
			},
			Amplification: Amplification{Gain: 7.2, Exponent: 2},
		},
		Earthquake: EarthquakeModel{
			Weights: EarthquakeWeights{
				RecentEarthquakes:   0.25,
				MaxMagnitude:        0.28,
				AvgMagnitude:        0.10,
				AvgDepth:            0.10,
				FaultDistance:       0.06,
				TectonicActivity:    0.15,
				GeologicalStability: 0.06,
			},
			Amplification: Amplification{Gain: 5.4, Exponent: 2},
			Interaction:   0.15,
			Magnitude: MagnitudeModel{
				Max:         0.45,
				Avg:         0.45,
				Probability: 0.10,
				DefaultAvg:  4.0,
			},
		},
		Thresholds:      DefaultThresholds(),
		ConfidenceFloor: 0.3,
	}
}

// DefaultThresholds returns the 0.30 / 0.60 / 0.80 band edges.
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 0.30, High: 0.60, Critical: 0.80}
}

const weightSumTolerance = 1e-6

// Validate checks that weights are non-negative and sum to 1, curves are
// monotone, and thresholds are strictly increasing inside (0, 1].
func (c ModelConfig) Validate() error {
	var errs []error
	if c.Version == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if err := checkWeights("flood", c.Flood.Weights.values()); err != nil {
		errs = append(errs, err)
	}
	if err := checkWeights("earthquake", c.Earthquake.Weights.values()); err != nil {
		errs = append(errs, err)
	}
	if err := c.Flood.Amplification.validate("flood"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Earthquake.Amplification.validate("earthquake"); err != nil {
		errs = append(errs, err)
	}
	if c.Earthquake.Interaction < 0 {
		errs = append(errs, fmt.Errorf("earthquake interaction must be >= 0, got %v", c.Earthquake.Interaction))
	}
	m := c.Earthquake.Magnitude
	if m.Max < 0 || m.Avg < 0 || m.Probability < 0 {
		errs = append(errs, errors.New("magnitude weights must be >= 0"))
	}
	t := c.Thresholds
	if !(t.Medium > 0 && t.Medium < t.High && t.High < t.Critical && t.Critical <= 1) {
		errs = append(errs, fmt.Errorf("thresholds must satisfy 0 < medium < high < critical <= 1, got %v/%v/%v", t.Medium, t.High, t.Critical))
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		errs = append(errs, fmt.Errorf("confidence floor must be in [0, 1], got %v", c.ConfidenceFloor))
	}
	return errors.Join(errs...)
}

func checkWeights(model string, ws []float64) error {
	var sum float64
	for _, w := range ws {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%s weights must be >= 0", model)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%s weights must sum to 1, got %.6f", model, sum)
	}
	return nil
}

func (a Amplification) validate(model string) error {
	if !(a.Gain > 0) {
		return fmt.Errorf("%s amplification gain must be > 0, got %v", model, a.Gain)
	}
	if !(a.Exponent >= 1) {
		return fmt.Errorf("%s amplification exponent must be >= 1, got %v", model, a.Exponent)
	}
	return nil
}
