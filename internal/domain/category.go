package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHazard is returned when an observation names a hazard other than
// flood or earthquake.
var ErrUnknownHazard = errors.New("unknown hazard")

// Hazard identifies which risk model an observation is scored against.
type Hazard string

const (
	HazardFlood      Hazard = "flood"
	HazardEarthquake Hazard = "earthquake"
)

// ParseHazard accepts "flood" or "earthquake" in any case.
func ParseHazard(s string) (Hazard, error) {
	switch h := Hazard(strings.ToLower(strings.TrimSpace(s))); h {
	case HazardFlood, HazardEarthquake:
		return h, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownHazard, s)
	}
}

// SoilType is the soil class used as a drainage proxy. The zero value means
// the soil type was not reported.
type SoilType string

const (
	SoilClay SoilType = "CLAY"
	SoilLoam SoilType = "LOAM"
	SoilSand SoilType = "SAND"
	SoilRock SoilType = "ROCK"
)

// Valid reports whether s is unset or one of the known soil classes.
func (s SoilType) Valid() bool {
	switch s {
	case "", SoilClay, SoilLoam, SoilSand, SoilRock:
		return true
	}
	return false
}

func (s *SoilType) UnmarshalText(text []byte) error {
	v, err := parseCategory("soil_type", text, SoilClay, SoilLoam, SoilSand, SoilRock)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// TectonicActivity is the regional background seismic hazard label.
type TectonicActivity string

const (
	TectonicLow    TectonicActivity = "LOW"
	TectonicMedium TectonicActivity = "MEDIUM"
	TectonicHigh   TectonicActivity = "HIGH"
)

func (t TectonicActivity) Valid() bool {
	switch t {
	case "", TectonicLow, TectonicMedium, TectonicHigh:
		return true
	}
	return false
}

func (t *TectonicActivity) UnmarshalText(text []byte) error {
	v, err := parseCategory("tectonic_activity", text, TectonicLow, TectonicMedium, TectonicHigh)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// GeologicalStability is the regional ground stability label.
type GeologicalStability string

const (
	StabilityStable   GeologicalStability = "STABLE"
	StabilityModerate GeologicalStability = "MODERATE"
	StabilityUnstable GeologicalStability = "UNSTABLE"
)

func (g GeologicalStability) Valid() bool {
	switch g {
	case "", StabilityStable, StabilityModerate, StabilityUnstable:
		return true
	}
	return false
}

func (g *GeologicalStability) UnmarshalText(text []byte) error {
	v, err := parseCategory("geological_stability", text, StabilityStable, StabilityModerate, StabilityUnstable)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// parseCategory matches text case-insensitively against allowed. Empty text
// yields the zero value, which callers treat as "not reported".
func parseCategory[T ~string](field string, text []byte, allowed ...T) (T, error) {
	var zero T
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	if s == "" {
		return zero, nil
	}
	for _, a := range allowed {
		if string(a) == s {
			return a, nil
		}
	}
	return zero, fmt.Errorf("%w: %s %q", ErrInvalidCategoricalValue, field, string(text))
}

// RiskLevel is the ordinal risk classification. Levels compare with < and >.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

var riskLevelNames = [...]string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}

func (l RiskLevel) String() string {
	if l < RiskLow || l > RiskCritical {
		return fmt.Sprintf("RiskLevel(%d)", int(l))
	}
	return riskLevelNames[l]
}

func (l RiskLevel) MarshalText() ([]byte, error) {
	if l < RiskLow || l > RiskCritical {
		return nil, fmt.Errorf("invalid risk level %d", int(l))
	}
	return []byte(riskLevelNames[l]), nil
}

func (l *RiskLevel) UnmarshalText(text []byte) error {
	s := strings.ToUpper(strings.TrimSpace(string(text)))
	for i, name := range riskLevelNames {
		if name == s {
			*l = RiskLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", string(text))
}
