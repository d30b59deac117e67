package systems

// Range is the closed interval a paddle center may occupy.
type Range struct {
	Min, Max float64
}

// Clamp restricts v to the range.
func (r Range) Clamp(v float64) float64 {
	return Clamp(v, r.Min, r.Max)
}

// Center returns the midpoint of the range.
func (r Range) Center() float64 {
	return (r.Min + r.Max) / 2
}

// PaddleRange returns the legal center range for a paddle of the given
// half height inside a field of the given height.
func PaddleRange(halfHeight, fieldHeight float64) Range {
	return Range{Min: halfHeight, Max: fieldHeight - halfHeight}
}

// StepTarget nudges target toward desired by sensitivity and clamps the result.
// sensitivity 1 snaps, below 1 damps, above 1 overshoots until the clamp.
// A non-finite desired value leaves the target where it was.
func StepTarget(target, desired, sensitivity float64, r Range) float64 {
	desired = finiteOr(desired, target)
	return r.Clamp(target + (desired-target)*sensitivity)
}

// PursueTarget moves a paddle toward its target with exponential smoothing.
// smoothing is the weight kept on the current position.
func PursueTarget(y, target, smoothing float64, r Range) float64 {
	return r.Clamp(smoothing*y + (1-smoothing)*target)
}

// ChaseBall moves the AI paddle a fixed fraction of the way toward the ball.
// The gain is applied per call, not per second.
func ChaseBall(y, ballY, gain float64, r Range) float64 {
	aim := r.Clamp(ballY)
	return r.Clamp(y + (aim-y)*gain)
}
