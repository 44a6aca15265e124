package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultModelConfig(), clockwork.NewFakeClockAt(testNow))
	require.NoError(t, err)
	return e
}

var testLocation = GeoPoint{Latitude: 29.76, Longitude: -95.37}

func highFloodInput() FloodInput {
	return FloodInput{
		Location:         testLocation,
		Precipitation24h: Ptr(75.0),
		Precipitation48h: Ptr(120.0),
		WaterLevel:       Ptr(4.5),
		Elevation:        Ptr(45.0),
		SoilType:         SoilClay,
	}
}

func lowFloodInput() FloodInput {
	return FloodInput{
		Location:         testLocation,
		Precipitation24h: Ptr(2.0),
		Precipitation48h: Ptr(5.0),
		WaterLevel:       Ptr(1.5),
		Elevation:        Ptr(200.0),
		SoilType:         SoilSand,
	}
}

func highEarthquakeInput() EarthquakeInput {
	return EarthquakeInput{
		Location:            GeoPoint{Latitude: 37.77, Longitude: -122.42},
		RecentEarthquakes:   Ptr(8),
		MaxMagnitude30d:     Ptr(5.2),
		FaultDistanceKm:     Ptr(15.0),
		TectonicActivity:    TectonicHigh,
		GeologicalStability: StabilityModerate,
	}
}

func lowEarthquakeInput() EarthquakeInput {
	return EarthquakeInput{
		Location:            GeoPoint{Latitude: 40.71, Longitude: -74.00},
		RecentEarthquakes:   Ptr(1),
		MaxMagnitude30d:     Ptr(2.8),
		FaultDistanceKm:     Ptr(150.0),
		TectonicActivity:    TectonicLow,
		GeologicalStability: StabilityStable,
	}
}

func TestAssessFlood_Scenarios(t *testing.T) {
	e := newTestEngine(t)

	t.Run("high risk", func(t *testing.T) {
		a, err := e.AssessFlood(highFloodInput())
		require.NoError(t, err)
		assert.Equal(t, RiskCritical, a.RiskLevel)
		assert.InDelta(t, 0.95, a.FloodProbability, 0.05)
		assert.InDelta(t, 8.0/12.0, a.ConfidenceScore, 1e-9)
		assert.Equal(t, []string{
			"heavy rainfall in last 24 hours",
			"high water levels detected",
			"low elevation area",
			"clay soil with poor drainage",
		}, a.Factors)
	})

	t.Run("low risk", func(t *testing.T) {
		a, err := e.AssessFlood(lowFloodInput())
		require.NoError(t, err)
		assert.Equal(t, RiskLow, a.RiskLevel)
		assert.InDelta(t, 0.05, a.FloodProbability, 0.05)
		assert.Empty(t, a.Factors)
	})
}

func TestAssessEarthquake_Scenarios(t *testing.T) {
	e := newTestEngine(t)

	t.Run("high risk", func(t *testing.T) {
		a, err := e.AssessEarthquake(highEarthquakeInput())
		require.NoError(t, err)
		assert.Equal(t, RiskCritical, a.RiskLevel)
		assert.InDelta(t, 0.90, a.RiskProbability, 0.05)
		assert.InDelta(t, 4.9, a.EstimatedMagnitude, 0.3)
		assert.InDelta(t, 0.8, a.ConfidenceScore, 1e-9)
		assert.Equal(t, []string{
			"high recent seismic activity",
			"close proximity to fault lines",
			"recent significant earthquakes in area",
			"high tectonic activity region",
		}, a.Factors)
	})

	t.Run("low risk", func(t *testing.T) {
		a, err := e.AssessEarthquake(lowEarthquakeInput())
		require.NoError(t, err)
		assert.Equal(t, RiskLow, a.RiskLevel)
		assert.InDelta(t, 0.10, a.RiskProbability, 0.05)
		assert.InDelta(t, 3.2, a.EstimatedMagnitude, 0.3)
		assert.Empty(t, a.Factors)
	})
}

func TestAssess_RejectsInvalidCoordinates(t *testing.T) {
	e := newTestEngine(t)
	bad := []GeoPoint{
		{Latitude: 95, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 180.1},
		{Latitude: 0, Longitude: -181},
	}

	for _, loc := range bad {
		flood := highFloodInput()
		flood.Location = loc
		_, err := e.AssessFlood(flood)
		require.ErrorIs(t, err, ErrInvalidCoordinate)

		quake := highEarthquakeInput()
		quake.Location = loc
		_, err = e.AssessEarthquake(quake)
		require.ErrorIs(t, err, ErrInvalidCoordinate)
	}
}

func TestAssess_CoordinatesCheckedBeforeCategories(t *testing.T) {
	e := newTestEngine(t)
	in := FloodInput{Location: GeoPoint{Latitude: 95}, SoilType: SoilType("PEAT")}

	_, err := e.AssessFlood(in)
	require.ErrorIs(t, err, ErrInvalidCoordinate)
	assert.NotErrorIs(t, err, ErrInvalidCategoricalValue)
}

func TestAssess_RejectsInvalidCategories(t *testing.T) {
	e := newTestEngine(t)

	flood := highFloodInput()
	flood.SoilType = SoilType("PEAT")
	_, err := e.AssessFlood(flood)
	require.ErrorIs(t, err, ErrInvalidCategoricalValue)
	assert.Contains(t, err.Error(), "soil_type")

	quake := highEarthquakeInput()
	quake.TectonicActivity = TectonicActivity("EXTREME")
	_, err = e.AssessEarthquake(quake)
	require.ErrorIs(t, err, ErrInvalidCategoricalValue)
	assert.Contains(t, err.Error(), "tectonic_activity")

	quake = highEarthquakeInput()
	quake.GeologicalStability = GeologicalStability("SHAKY")
	_, err = e.AssessEarthquake(quake)
	require.ErrorIs(t, err, ErrInvalidCategoricalValue)
	assert.Contains(t, err.Error(), "geological_stability")
}

func TestAssess_CoordinatesOnly(t *testing.T) {
	e := newTestEngine(t)

	flood, err := e.AssessFlood(FloodInput{Location: testLocation})
	require.NoError(t, err)
	assert.Equal(t, 0.0, flood.FloodProbability)
	assert.Equal(t, RiskLow, flood.RiskLevel)
	assert.Equal(t, 0.3, flood.ConfidenceScore)

	quake, err := e.AssessEarthquake(EarthquakeInput{Location: testLocation})
	require.NoError(t, err)
	assert.Equal(t, 0.0, quake.RiskProbability)
	assert.Equal(t, 0.3, quake.ConfidenceScore)
	// floor peak 2.0 and baseline average 4.0
	assert.InDelta(t, 2.7, quake.EstimatedMagnitude, 1e-9)
}

func TestAssessFlood_FullInputHasFullConfidence(t *testing.T) {
	e := newTestEngine(t)
	in := highFloodInput()
	in.Temperature = Ptr(18.0)
	in.Humidity = Ptr(85.0)
	in.WindSpeed = Ptr(12.0)
	in.RiverFlow = Ptr(400.0)

	a, err := e.AssessFlood(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.ConfidenceScore)
}

func TestAssessFlood_OutOfDomainValueLowersConfidence(t *testing.T) {
	e := newTestEngine(t)
	in := highFloodInput()
	in.Temperature = Ptr(18.0)
	in.Humidity = Ptr(85.0)
	in.RiverFlow = Ptr(400.0)
	in.WindSpeed = Ptr(12.0)

	clean, err := e.AssessFlood(in)
	require.NoError(t, err)

	in.WindSpeed = Ptr(500.0) // beyond any plausible wind speed
	degraded, err := e.AssessFlood(in)
	require.NoError(t, err)

	assert.InDelta(t, 11.5/12.0, degraded.ConfidenceScore, 1e-9)
	assert.Less(t, degraded.ConfidenceScore, clean.ConfidenceScore)
	assert.GreaterOrEqual(t, degraded.FloodProbability, clean.FloodProbability)
}

func TestAssessEarthquake_NonPositiveDepthIsLowQuality(t *testing.T) {
	e := newTestEngine(t)
	in := highEarthquakeInput()
	in.AvgMagnitude30d = Ptr(3.5)
	in.AvgDepthKm = Ptr(10.0)

	full, err := e.AssessEarthquake(in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, full.ConfidenceScore)

	in.AvgDepthKm = Ptr(0.0)
	zero, err := e.AssessEarthquake(in)
	require.NoError(t, err)
	assert.InDelta(t, 9.5/10.0, zero.ConfidenceScore, 1e-9)
}

func TestAssess_PopulationDensityDoesNotAffectRisk(t *testing.T) {
	e := newTestEngine(t)
	in := highEarthquakeInput()
	base, err := e.AssessEarthquake(in)
	require.NoError(t, err)

	in.PopulationDensity = Ptr(12000.0)
	dense, err := e.AssessEarthquake(in)
	require.NoError(t, err)

	assert.Equal(t, base.RiskProbability, dense.RiskProbability)
	assert.Equal(t, base.ConfidenceScore, dense.ConfidenceScore)
	assert.Equal(t, base.EstimatedMagnitude, dense.EstimatedMagnitude)
}

func TestAssess_Determinism(t *testing.T) {
	e := newTestEngine(t)

	f1, err := e.AssessFlood(highFloodInput())
	require.NoError(t, err)
	f2, err := e.AssessFlood(highFloodInput())
	require.NoError(t, err)
	if diff := cmp.Diff(f1, f2); diff != "" {
		t.Fatalf("flood assessment not deterministic (-first +second):\n%s", diff)
	}

	q1, err := e.AssessEarthquake(highEarthquakeInput())
	require.NoError(t, err)
	q2, err := e.AssessEarthquake(highEarthquakeInput())
	require.NoError(t, err)
	if diff := cmp.Diff(q1, q2); diff != "" {
		t.Fatalf("earthquake assessment not deterministic (-first +second):\n%s", diff)
	}
}

func TestAssess_ConcurrentCallsAgree(t *testing.T) {
	e := newTestEngine(t)
	want, err := e.AssessEarthquake(highEarthquakeInput())
	require.NoError(t, err)

	const workers = 32
	results := make([]EarthquakeAssessment, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := e.AssessEarthquake(highEarthquakeInput())
			if err == nil {
				results[i] = a
			}
		}()
	}
	wg.Wait()

	for i, got := range results {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("worker %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestAssessFlood_Monotonicity(t *testing.T) {
	e := newTestEngine(t)

	increasing := map[string]func(*FloodInput, float64){
		"precipitation_24h": func(in *FloodInput, v float64) { in.Precipitation24h = Ptr(v) },
		"precipitation_48h": func(in *FloodInput, v float64) { in.Precipitation48h = Ptr(v) },
		"water_level":       func(in *FloodInput, v float64) { in.WaterLevel = Ptr(v / 20) },
	}
	for name, set := range increasing {
		t.Run(name, func(t *testing.T) {
			prev := -1.0
			for v := 0.0; v <= 400; v += 5 {
				in := lowFloodInput()
				set(&in, v)
				a, err := e.AssessFlood(in)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, a.FloodProbability, prev, "value %v", v)
				prev = a.FloodProbability
			}
		})
	}

	t.Run("elevation", func(t *testing.T) {
		prev := 2.0
		for v := -100.0; v <= 1000; v += 10 {
			in := highFloodInput()
			in.Precipitation24h = Ptr(20.0)
			in.Elevation = Ptr(v)
			a, err := e.AssessFlood(in)
			require.NoError(t, err)
			assert.LessOrEqual(t, a.FloodProbability, prev, "elevation %v", v)
			prev = a.FloodProbability
		}
	})
}

func TestAssessEarthquake_Monotonicity(t *testing.T) {
	e := newTestEngine(t)

	t.Run("fault_distance", func(t *testing.T) {
		prev := 2.0
		for v := 0.0; v <= 1000; v += 10 {
			in := lowEarthquakeInput()
			in.FaultDistanceKm = Ptr(v)
			a, err := e.AssessEarthquake(in)
			require.NoError(t, err)
			assert.LessOrEqual(t, a.RiskProbability, prev, "fault distance %v", v)
			prev = a.RiskProbability
		}
	})

	t.Run("max_magnitude_30d", func(t *testing.T) {
		prev := -1.0
		for v := 0.0; v <= 10; v += 0.1 {
			in := lowEarthquakeInput()
			in.MaxMagnitude30d = Ptr(v)
			a, err := e.AssessEarthquake(in)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, a.RiskProbability, prev, "max magnitude %v", v)
			prev = a.RiskProbability
		}
	})
}

func TestAssess_Bounds(t *testing.T) {
	e := newTestEngine(t)
	extremes := []float64{-1e9, -50, 0, 1, 75, 1e3, 1e9}

	for _, v := range extremes {
		flood, err := e.AssessFlood(FloodInput{
			Location:         testLocation,
			Temperature:      Ptr(v),
			Humidity:         Ptr(v),
			Precipitation24h: Ptr(v),
			Precipitation48h: Ptr(v),
			WindSpeed:        Ptr(v),
			WaterLevel:       Ptr(v),
			RiverFlow:        Ptr(v),
			Elevation:        Ptr(-v),
			SoilType:         SoilClay,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, flood.FloodProbability, 0.0)
		assert.LessOrEqual(t, flood.FloodProbability, 1.0)
		assert.GreaterOrEqual(t, flood.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, flood.ConfidenceScore, 1.0)

		quake, err := e.AssessEarthquake(EarthquakeInput{
			Location:            testLocation,
			RecentEarthquakes:   Ptr(int(min(max(v, -1e6), 1e6))),
			MaxMagnitude30d:     Ptr(v),
			AvgMagnitude30d:     Ptr(v),
			AvgDepthKm:          Ptr(v),
			FaultDistanceKm:     Ptr(-v),
			TectonicActivity:    TectonicHigh,
			GeologicalStability: StabilityUnstable,
		})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quake.RiskProbability, 0.0)
		assert.LessOrEqual(t, quake.RiskProbability, 1.0)
		assert.GreaterOrEqual(t, quake.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, quake.ConfidenceScore, 1.0)
		assert.GreaterOrEqual(t, quake.EstimatedMagnitude, 2.0)
		assert.LessOrEqual(t, quake.EstimatedMagnitude, 9.0)
	}
}

func TestAssess_Timestamps(t *testing.T) {
	e := newTestEngine(t)

	t.Run("prediction time defaults to clock", func(t *testing.T) {
		a, err := e.AssessFlood(highFloodInput())
		require.NoError(t, err)
		assert.Equal(t, testNow, a.CreatedAt)
		assert.Equal(t, testNow, a.PredictionTime)
		assert.Equal(t, DefaultHoursAhead, a.HoursAhead)
		assert.Equal(t, ModelVersion, a.ModelVersion)
		assert.Equal(t, HazardFlood, a.Hazard)
		assert.Equal(t, testLocation.Latitude, a.Latitude)
	})

	t.Run("horizon is echoed", func(t *testing.T) {
		in := highEarthquakeInput()
		predicted := testNow.Add(6 * time.Hour)
		in.Horizon = Horizon{PredictionTime: predicted, HoursAhead: 72}

		a, err := e.AssessEarthquake(in)
		require.NoError(t, err)
		assert.Equal(t, predicted, a.PredictionTime)
		assert.Equal(t, 72, a.HoursAhead)
		assert.Equal(t, testNow, a.CreatedAt)
	})

	t.Run("horizon is clamped", func(t *testing.T) {
		in := highFloodInput()
		in.HoursAhead = 500
		a, err := e.AssessFlood(in)
		require.NoError(t, err)
		assert.Equal(t, MaxHoursAhead, a.HoursAhead)

		in.HoursAhead = -3
		a, err = e.AssessFlood(in)
		require.NoError(t, err)
		assert.Equal(t, 1, a.HoursAhead)
	})
}

func TestAssess_IDs(t *testing.T) {
	e := newTestEngine(t)

	a1, err := e.AssessFlood(highFloodInput())
	require.NoError(t, err)
	a2, err := e.AssessFlood(lowFloodInput())
	require.NoError(t, err)
	assert.Len(t, a1.ID, 36)
	assert.Equal(t, a1.ID, a2.ID, "same hazard, point and time share an id")

	quake := highEarthquakeInput()
	quake.Location = testLocation
	q, err := e.AssessEarthquake(quake)
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, q.ID)

	moved := highFloodInput()
	moved.Location.Latitude += 0.5
	a3, err := e.AssessFlood(moved)
	require.NoError(t, err)
	assert.NotEqual(t, a1.ID, a3.ID)
}

func TestAssessObservation(t *testing.T) {
	e := newTestEngine(t)

	t.Run("flood", func(t *testing.T) {
		rec := ObservationRecord{
			Hazard:           HazardFlood,
			Latitude:         Ptr(29.76),
			Longitude:        Ptr(-95.37),
			Precipitation24h: Ptr(75.0),
		}
		a, err := e.AssessObservation(rec)
		require.NoError(t, err)
		fa, ok := a.(FloodAssessment)
		require.True(t, ok)
		assert.Equal(t, HazardFlood, fa.Hazard)
	})

	t.Run("earthquake", func(t *testing.T) {
		rec := ObservationRecord{
			Hazard:    HazardEarthquake,
			Latitude:  Ptr(37.77),
			Longitude: Ptr(-122.42),
		}
		a, err := e.AssessObservation(rec)
		require.NoError(t, err)
		_, ok := a.(EarthquakeAssessment)
		assert.True(t, ok)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		_, err := e.AssessObservation(ObservationRecord{Hazard: HazardFlood, Latitude: Ptr(10.0)})
		require.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("unknown hazard", func(t *testing.T) {
		a, err := e.AssessObservation(ObservationRecord{Hazard: "tsunami"})
		require.ErrorIs(t, err, ErrUnknownHazard)
		assert.Nil(t, a)
	})
}

func TestNewEngine_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultModelConfig()
	cfg.Flood.Weights.WindSpeed = 0.5

	_, err := NewEngine(cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flood weights must sum to 1")
}

func TestEngine_AlternateWeights(t *testing.T) {
	cfg := DefaultModelConfig()
	cfg.Flood.Weights = FloodWeights{SoilDrainage: 1}
	e, err := NewEngine(cfg, clockwork.NewFakeClockAt(testNow))
	require.NoError(t, err)

	a, err := e.AssessFlood(FloodInput{Location: testLocation, SoilType: SoilLoam, Precipitation24h: Ptr(200.0)})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, a.FloodProbability, 1e-9)
	assert.Equal(t, RiskHigh, a.RiskLevel, "0.60 opens the HIGH band")

	sand, err := e.AssessFlood(FloodInput{Location: testLocation, SoilType: SoilSand})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, sand.FloodProbability, 1e-9)
	assert.Equal(t, RiskMedium, sand.RiskLevel)

	// the default engine is unaffected
	assert.Equal(t, 0.04, DefaultModelConfig().Flood.Weights.SoilDrainage)
}
