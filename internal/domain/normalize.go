package domain

import "math"

// Factor names. They match the observation JSON field names.
const (
	FactorTemperature      = "temperature"
	FactorHumidity         = "humidity"
	FactorPrecipitation24h = "precipitation_24h"
	FactorPrecipitation48h = "precipitation_48h"
	FactorWindSpeed        = "wind_speed"
	FactorWaterLevel       = "water_level"
	FactorRiverFlow        = "river_flow"
	FactorElevation        = "elevation"
	FactorSoilType         = "soil_type"

	FactorRecentEarthquakes   = "recent_earthquakes"
	FactorMaxMagnitude        = "max_magnitude_30d"
	FactorAvgMagnitude        = "avg_magnitude_30d"
	FactorAvgDepth            = "avg_depth"
	FactorFaultDistance       = "fault_distance"
	FactorTectonicActivity    = "tectonic_activity"
	FactorGeologicalStability = "geological_stability"
)

// Factor is one normalized input. Known is false when the value was not
// reported. LowQuality marks a value that lay outside its plausible physical
// domain and was clamped.
type Factor struct {
	Value      float64
	Known      bool
	LowQuality bool
}

// FactorSet maps factor names to normalized values in [0, 1].
type FactorSet map[string]Factor

// value returns the normalized value, or 0 for an unknown factor.
func (fs FactorSet) value(name string) float64 {
	f := fs[name]
	if !f.Known {
		return 0
	}
	return f.Value
}

// measure describes how one continuous input is rescaled. [lo, hi] is the
// normalization range; [min, max] is the plausible physical domain.
type measure struct {
	lo, hi   float64
	min, max float64
	openMin  bool // the domain excludes min itself
	inverted bool
}

var (
	temperatureMeasure      = measure{lo: -60, hi: 60, min: -60, max: 60}
	humidityMeasure         = measure{lo: 0, hi: 100, min: 0, max: 100}
	precipitation24hMeasure = measure{lo: 0, hi: 200, min: 0, max: 2000}
	precipitation48hMeasure = measure{lo: 0, hi: 300, min: 0, max: 3000}
	windSpeedMeasure        = measure{lo: 0, hi: 30, min: 0, max: 120}
	waterLevelMeasure       = measure{lo: 0, hi: 10, min: 0, max: 100}
	riverFlowMeasure        = measure{lo: 50, hi: 1000, min: 0, max: 300000}
	elevationMeasure        = measure{lo: 0, hi: 500, min: -500, max: 9000, inverted: true}

	recentEarthquakesMeasure = measure{lo: 0, hi: 20, min: 0, max: 10000}
	maxMagnitudeMeasure      = measure{lo: 2, hi: 8, min: 0, max: 10}
	avgMagnitudeMeasure      = measure{lo: 2, hi: 6, min: 0, max: 10}
	avgDepthMeasure          = measure{lo: 5, hi: 50, min: 0, max: 800, openMin: true, inverted: true}
	faultDistanceMeasure     = measure{lo: 0, hi: 500, min: 0, max: 20040, inverted: true}
)

var (
	soilDrainage = map[SoilType]float64{
		SoilClay: 1.0,
		SoilLoam: 0.6,
		SoilSand: 0.3,
		SoilRock: 0.1,
	}
	tectonicCoefficient = map[TectonicActivity]float64{
		TectonicLow:    0.2,
		TectonicMedium: 0.5,
		TectonicHigh:   0.9,
	}
	stabilityCoefficient = map[GeologicalStability]float64{
		StabilityStable:   0.1,
		StabilityModerate: 0.5,
		StabilityUnstable: 0.9,
	}
)

func (m measure) normalize(v *float64) Factor {
	if v == nil || math.IsNaN(*v) {
		return Factor{}
	}
	x := *v
	f := Factor{Known: true}
	if x < m.min || x > m.max || (m.openMin && x <= m.min) {
		f.LowQuality = true
		x = clamp(x, m.min, m.max)
	}
	n := clamp((x-m.lo)/(m.hi-m.lo), 0, 1)
	if m.inverted {
		n = 1 - n
	}
	f.Value = n
	return f
}

// bound clamps v into the measure's physical domain. ok is false when v is
// unset or NaN.
func (m measure) bound(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) {
		return 0, false
	}
	return clamp(*v, m.min, m.max), true
}

func categorical[T comparable](v T, coefficients map[T]float64) Factor {
	c, ok := coefficients[v]
	if !ok {
		return Factor{}
	}
	return Factor{Value: c, Known: true}
}

// NormalizeFlood rescales every flood input into a factor. Unreported fields
// are present in the set with Known false.
func NormalizeFlood(in FloodInput) FactorSet {
	return FactorSet{
		FactorTemperature:      temperatureMeasure.normalize(in.Temperature),
		FactorHumidity:         humidityMeasure.normalize(in.Humidity),
		FactorPrecipitation24h: precipitation24hMeasure.normalize(in.Precipitation24h),
		FactorPrecipitation48h: precipitation48hMeasure.normalize(in.Precipitation48h),
		FactorWindSpeed:        windSpeedMeasure.normalize(in.WindSpeed),
		FactorWaterLevel:       waterLevelMeasure.normalize(in.WaterLevel),
		FactorRiverFlow:        riverFlowMeasure.normalize(in.RiverFlow),
		FactorElevation:        elevationMeasure.normalize(in.Elevation),
		FactorSoilType:         categorical(in.SoilType, soilDrainage),
	}
}

// NormalizeEarthquake rescales every earthquake input into a factor.
// Population density is informational and not part of the set.
func NormalizeEarthquake(in EarthquakeInput) FactorSet {
	var count *float64
	if in.RecentEarthquakes != nil {
		count = Ptr(float64(*in.RecentEarthquakes))
	}
	return FactorSet{
		FactorRecentEarthquakes:   recentEarthquakesMeasure.normalize(count),
		FactorMaxMagnitude:        maxMagnitudeMeasure.normalize(in.MaxMagnitude30d),
		FactorAvgMagnitude:        avgMagnitudeMeasure.normalize(in.AvgMagnitude30d),
		FactorAvgDepth:            avgDepthMeasure.normalize(in.AvgDepthKm),
		FactorFaultDistance:       faultDistanceMeasure.normalize(in.FaultDistanceKm),
		FactorTectonicActivity:    categorical(in.TectonicActivity, tectonicCoefficient),
		FactorGeologicalStability: categorical(in.GeologicalStability, stabilityCoefficient),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// clamp01 pins v into [0, 1] and maps NaN to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}
