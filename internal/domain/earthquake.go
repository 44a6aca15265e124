package domain

const (
	minMagnitude = 2.0
	maxMagnitude = 9.0
)

// earthquakeProbability combines normalized seismic factors. The count and
// peak magnitude terms are amplified, and an interaction term rewards
// recent activity that is both frequent and strong.
func earthquakeProbability(fs FactorSet, m EarthquakeModel) float64 {
	w, amp := m.Weights, m.Amplification
	count := fs.value(FactorRecentEarthquakes)
	peak := fs.value(FactorMaxMagnitude)

	sum := w.RecentEarthquakes*amp.apply(count) +
		w.MaxMagnitude*amp.apply(peak) +
		w.AvgMagnitude*fs.value(FactorAvgMagnitude) +
		w.AvgDepth*fs.value(FactorAvgDepth) +
		w.FaultDistance*fs.value(FactorFaultDistance) +
		w.TectonicActivity*fs.value(FactorTectonicActivity) +
		w.GeologicalStability*fs.value(FactorGeologicalStability)
	sum += m.Interaction * count * peak
	return clamp01(sum)
}

// estimateMagnitude projects a plausible magnitude from recent peak and
// average activity and the computed probability. An unreported peak falls
// back to the magnitude floor and an unreported average to the configured
// baseline.
func estimateMagnitude(in EarthquakeInput, probability float64, m MagnitudeModel) float64 {
	peak, ok := maxMagnitudeMeasure.bound(in.MaxMagnitude30d)
	if !ok {
		peak = minMagnitude
	}
	avg, ok := avgMagnitudeMeasure.bound(in.AvgMagnitude30d)
	if !ok {
		avg = m.DefaultAvg
	}
	est := m.Max*peak + m.Avg*avg + m.Probability*probability*8
	return clamp(est, minMagnitude, maxMagnitude)
}

var earthquakeImportance = []fieldImportance{
	{FactorRecentEarthquakes, importanceCritical},
	{FactorMaxMagnitude, importanceCritical},
	{FactorFaultDistance, importanceCritical},
	{FactorAvgMagnitude, importanceSecondary},
	{FactorAvgDepth, importanceSecondary},
	{FactorTectonicActivity, importanceSecondary},
	{FactorGeologicalStability, importanceSecondary},
}
