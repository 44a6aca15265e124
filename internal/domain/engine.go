package domain

import (
	"fmt"

	"github.com/jonboulle/clockwork"
)

// Engine scores flood and earthquake inputs against a fixed ModelConfig.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg   ModelConfig
	clock clockwork.Clock
}

// NewEngine validates cfg and returns an engine that stamps assessments with
// clock. A nil clock uses real time.
func NewEngine(cfg ModelConfig, clock clockwork.Clock) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model config: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{cfg: cfg, clock: clock}, nil
}

// Config returns a copy of the engine's model configuration.
func (e *Engine) Config() ModelConfig {
	return e.cfg
}

// AssessFlood scores a flood input. It fails only with ErrInvalidCoordinate
// or ErrInvalidCategoricalValue.
func (e *Engine) AssessFlood(in FloodInput) (FloodAssessment, error) {
	if err := in.Location.Validate(); err != nil {
		return FloodAssessment{}, err
	}
	if !in.SoilType.Valid() {
		return FloodAssessment{}, fmt.Errorf("%w: soil_type %q", ErrInvalidCategoricalValue, in.SoilType)
	}

	factors := NormalizeFlood(in)
	p := floodProbability(factors, e.cfg.Flood)
	conf := confidence(factors, floodImportance, e.cfg.ConfidenceFloor)

	a := buildAssessment(HazardFlood, in.Location, in.Horizon, e.cfg.Thresholds.Classify(p), conf, e.cfg.Version, e.clock.Now())
	a.Factors = floodKeyFactors(in)
	return FloodAssessment{Assessment: a, FloodProbability: p}, nil
}

// AssessEarthquake scores an earthquake input and estimates a magnitude.
func (e *Engine) AssessEarthquake(in EarthquakeInput) (EarthquakeAssessment, error) {
	if err := in.Location.Validate(); err != nil {
		return EarthquakeAssessment{}, err
	}
	if !in.TectonicActivity.Valid() {
		return EarthquakeAssessment{}, fmt.Errorf("%w: tectonic_activity %q", ErrInvalidCategoricalValue, in.TectonicActivity)
	}
	if !in.GeologicalStability.Valid() {
		return EarthquakeAssessment{}, fmt.Errorf("%w: geological_stability %q", ErrInvalidCategoricalValue, in.GeologicalStability)
	}

	factors := NormalizeEarthquake(in)
	p := earthquakeProbability(factors, e.cfg.Earthquake)
	conf := confidence(factors, earthquakeImportance, e.cfg.ConfidenceFloor)

	a := buildAssessment(HazardEarthquake, in.Location, in.Horizon, e.cfg.Thresholds.Classify(p), conf, e.cfg.Version, e.clock.Now())
	a.Factors = earthquakeKeyFactors(in)
	return EarthquakeAssessment{
		Assessment:         a,
		RiskProbability:    p,
		EstimatedMagnitude: estimateMagnitude(in, p, e.cfg.Earthquake.Magnitude),
	}, nil
}

// AssessObservation converts rec to the input for its hazard and scores it.
func (e *Engine) AssessObservation(rec ObservationRecord) (Assessed, error) {
	switch rec.Hazard {
	case HazardFlood:
		in, err := rec.FloodInput()
		if err != nil {
			return nil, err
		}
		a, err := e.AssessFlood(in)
		if err != nil {
			return nil, err
		}
		return a, nil
	case HazardEarthquake:
		in, err := rec.EarthquakeInput()
		if err != nil {
			return nil, err
		}
		a, err := e.AssessEarthquake(in)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHazard, rec.Hazard)
	}
}
