package util

import "math"

// SafeDiv returns n/d, or 0 when d is (nearly) zero.
func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// NonNegative maps negative, NaN and infinite values to 0.
// Used for elapsed CPU/wall deltas, where a negative value can only mean a
// counter reset or clock skew.
func NonNegative(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return 0
	}
	return x
}
