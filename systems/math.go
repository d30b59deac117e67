package systems

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Clamp restricts v to [lo, hi]. lo wins if the bounds are inverted.
func Clamp[T constraints.Float](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Clamp01 clamps v to the unit interval.
func Clamp01[T constraints.Float](v T) T {
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b by t without clamping t.
func Lerp[T constraints.Float](a, b, t T) T {
	return a + (b-a)*t
}

// finiteOr returns v when it is a finite number and fallback otherwise.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
