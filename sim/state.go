// Package sim implements the paddle game simulation: ball physics, paddle
// control, the AI opponent and scoring.
package sim

import (
	"log/slog"
	"math"
	"time"
)

// State is the complete mutable game state.
type State struct {
	ScoreLeft  int
	ScoreRight int

	BallX, BallY   float64
	BallVX, BallVY float64
	BallRadius     float64

	LeftY   float64 // Human paddle center
	RightY  float64 // AI paddle center
	TargetY float64 // Where the human paddle is heading

	// LastUpdate is the time of the most recent Advance call. It is
	// bookkeeping for FPS readouts and never feeds back into physics.
	LastUpdate time.Time
}

// BallSpeed returns the magnitude of the ball velocity.
func (s State) BallSpeed() float64 {
	return math.Hypot(s.BallVX, s.BallVY)
}

// LogValue implements slog.LogValuer.
func (s State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("score_left", s.ScoreLeft),
		slog.Int("score_right", s.ScoreRight),
		slog.Float64("ball_x", s.BallX),
		slog.Float64("ball_y", s.BallY),
		slog.Float64("ball_speed", s.BallSpeed()),
		slog.Float64("left_y", s.LeftY),
		slog.Float64("right_y", s.RightY),
	)
}
