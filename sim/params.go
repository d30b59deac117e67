package sim

import (
	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/systems"
)

// Params holds the fixed geometry and tuning of one game session.
type Params struct {
	Width, Height float64

	BallRadius   float64
	BaseSpeed    float64
	SpeedJitter  float64
	ServeAngle   float64
	Acceleration float64
	Spin         float64
	ScoreMargin  float64
	MaxSpeed     float64 // 0 = unbounded

	PaddleWidth  float64
	PaddleHeight float64
	PaddleMargin float64
	AIGain       float64

	Smoothing   float64
	Sensitivity float64
}

// ParamsFromConfig extracts engine parameters from a loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Width:        cfg.Field.Width,
		Height:       cfg.Field.Height,
		BallRadius:   cfg.Ball.Radius,
		BaseSpeed:    cfg.Ball.BaseSpeed,
		SpeedJitter:  cfg.Ball.SpeedJitter,
		ServeAngle:   cfg.Ball.ServeAngle,
		Acceleration: cfg.Ball.Acceleration,
		Spin:         cfg.Ball.Spin,
		ScoreMargin:  cfg.Ball.ScoreMargin,
		MaxSpeed:     cfg.Ball.MaxSpeed,
		PaddleWidth:  cfg.Paddle.Width,
		PaddleHeight: cfg.Paddle.Height,
		PaddleMargin: cfg.Paddle.Margin,
		AIGain:       cfg.Paddle.AIGain,
		Smoothing:    cfg.Control.Smoothing,
		Sensitivity:  cfg.Control.Sensitivity,
	}
}

// DefaultParams returns the parameters of the embedded default config.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}

// HalfHeight returns half the paddle height.
func (p Params) HalfHeight() float64 {
	return p.PaddleHeight / 2
}

// PaddleRange returns the legal range of paddle centers.
func (p Params) PaddleRange() systems.Range {
	return systems.PaddleRange(p.HalfHeight(), p.Height)
}

// LeftPaddleX returns the left edge of the left paddle.
func (p Params) LeftPaddleX() float64 {
	return p.PaddleMargin
}

// RightPaddleX returns the left edge of the right paddle.
func (p Params) RightPaddleX() float64 {
	return p.Width - p.PaddleMargin - p.PaddleWidth
}
