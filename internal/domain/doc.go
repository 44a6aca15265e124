// Package domain implements the flood and earthquake risk scoring engine.
//
// # Scoring
//
// Every assessment follows the same shape:
//
//	input  →  normalize  →  weighted combine  →  classify  →  build
//
// Raw measurements are rescaled into unit-interval factors using fixed
// per-factor ranges (see [NormalizeFlood] and [NormalizeEarthquake]).
// Values outside a range saturate at 0 or 1. Elevation, depth and fault
// distance are inverted so that a higher factor always means higher risk.
//
// Flood probability is a weighted sum in which the two precipitation terms
// and water level pass through a convex amplification curve
// (gain · n^exponent). Earthquake probability amplifies the recent count and
// peak magnitude terms the same way and adds an interaction term when both
// are elevated. Probabilities are clamped to [0, 1].
//
// Estimated magnitude blends peak and average recent magnitude with the
// computed probability and is clamped to [2.0, 9.0].
//
// # Classification
//
//	[0.00, 0.30)  LOW
//	[0.30, 0.60)  MEDIUM
//	[0.60, 0.80)  HIGH
//	[0.80, 1.00]  CRITICAL
//
// # Confidence
//
// Confidence is the importance-weighted share of fields that were supplied.
// Critical fields count twice. A value outside its plausible physical domain
// is clamped and counts at half weight. Only the physical domain matters
// here: a value past the normalization range but still physically possible,
// such as 250 mm of rain in 24 hours, saturates at 1 and keeps full weight.
// Confidence never drops below the
// configured floor (0.3 by default) once coordinates are valid.
//
// # Errors
//
// Only [ErrInvalidCoordinate] and [ErrInvalidCategoricalValue] are returned
// from scoring. Missing or out-of-range numbers lower confidence instead.
//
// # Configuration
//
// Weights, gains and thresholds live in an immutable [ModelConfig] owned by
// an [Engine]. The engine is safe for concurrent use.
package domain
