package domain

const (
	importanceCritical  = 2.0
	importanceSecondary = 1.0
)

type fieldImportance struct {
	name   string
	weight float64
}

// confidence is the importance-weighted share of supplied fields. A clamped
// field counts at half weight. The result never falls below floor.
func confidence(fs FactorSet, fields []fieldImportance, floor float64) float64 {
	var supplied, total float64
	for _, f := range fields {
		total += f.weight
		factor := fs[f.name]
		switch {
		case !factor.Known:
		case factor.LowQuality:
			supplied += f.weight / 2
		default:
			supplied += f.weight
		}
	}
	if total == 0 {
		return clamp01(floor)
	}
	return clamp01(max(supplied/total, floor))
}
