package domain

// Classify maps a probability to its risk band. Each band includes its lower
// edge; CRITICAL also includes 1 and anything above it. NaN and negative
// probabilities are LOW.
func (t Thresholds) Classify(p float64) RiskLevel {
	switch {
	case !(p >= t.Medium):
		return RiskLow
	case p < t.High:
		return RiskMedium
	case p < t.Critical:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// Classify uses the default 0.30 / 0.60 / 0.80 thresholds.
func Classify(p float64) RiskLevel {
	return DefaultThresholds().Classify(p)
}
