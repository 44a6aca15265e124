package domain

// Key factor thresholds. A factor is listed on the assessment when the raw
// input crosses its threshold.
const (
	heavyRainfall24hMM     = 50.0
	highWaterLevelM        = 4.0
	lowElevationM          = 50.0
	highRecentEarthquakes  = 5
	nearFaultKm            = 50.0
	significantMagnitude30 = 5.0
)

// floodKeyFactors lists the human-readable drivers of a flood assessment.
func floodKeyFactors(in FloodInput) []string {
	factors := []string{}
	if in.Precipitation24h != nil && *in.Precipitation24h > heavyRainfall24hMM {
		factors = append(factors, "heavy rainfall in last 24 hours")
	}
	if in.WaterLevel != nil && *in.WaterLevel > highWaterLevelM {
		factors = append(factors, "high water levels detected")
	}
	if in.Elevation != nil && *in.Elevation < lowElevationM {
		factors = append(factors, "low elevation area")
	}
	if in.SoilType == SoilClay {
		factors = append(factors, "clay soil with poor drainage")
	}
	return factors
}

func earthquakeKeyFactors(in EarthquakeInput) []string {
	factors := []string{}
	if in.RecentEarthquakes != nil && *in.RecentEarthquakes > highRecentEarthquakes {
		factors = append(factors, "high recent seismic activity")
	}
	if in.FaultDistanceKm != nil && *in.FaultDistanceKm < nearFaultKm {
		factors = append(factors, "close proximity to fault lines")
	}
	if in.MaxMagnitude30d != nil && *in.MaxMagnitude30d > significantMagnitude30 {
		factors = append(factors, "recent significant earthquakes in area")
	}
	if in.TectonicActivity == TectonicHigh {
		factors = append(factors, "high tectonic activity region")
	}
	return factors
}
