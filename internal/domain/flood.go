package domain

// floodProbability combines normalized flood factors. Precipitation and water
// level are amplified; the rest enter linearly. Unknown factors contribute 0.
func floodProbability(fs FactorSet, m FloodModel) float64 {
	w, amp := m.Weights, m.Amplification
	sum := w.Precipitation24h*amp.apply(fs.value(FactorPrecipitation24h)) +
		w.Precipitation48h*amp.apply(fs.value(FactorPrecipitation48h)) +
		w.WaterLevel*amp.apply(fs.value(FactorWaterLevel)) +
		w.RiverFlow*fs.value(FactorRiverFlow) +
		w.Elevation*fs.value(FactorElevation) +
		w.SoilDrainage*fs.value(FactorSoilType) +
		w.WindSpeed*fs.value(FactorWindSpeed)
	return clamp01(sum)
}

// floodImportance lists the fields that count toward flood confidence.
var floodImportance = []fieldImportance{
	{FactorPrecipitation24h, importanceCritical},
	{FactorPrecipitation48h, importanceCritical},
	{FactorWaterLevel, importanceCritical},
	{FactorRiverFlow, importanceSecondary},
	{FactorElevation, importanceSecondary},
	{FactorSoilType, importanceSecondary},
	{FactorWindSpeed, importanceSecondary},
	{FactorTemperature, importanceSecondary},
	{FactorHumidity, importanceSecondary},
}
