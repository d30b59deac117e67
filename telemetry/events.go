// Package telemetry records match statistics, timing and CSV output.
package telemetry

import "github.com/pthm-cable/handpong/sim"

// PointRecord is one row of points.csv.
type PointRecord struct {
	Session    string  `csv:"session"`
	Tick       int64   `csv:"tick"`
	SimTimeSec float64 `csv:"sim_time"`
	Scorer     string  `csv:"scorer"`
	ScoreLeft  int     `csv:"score_left"`
	ScoreRight int     `csv:"score_right"`
	Rally      int     `csv:"rally"`
	ExitY      float64 `csv:"exit_y"`
	BallSpeed  float64 `csv:"ball_speed"` // Fastest speed seen since the last serve
}

// NewPointRecord builds a points.csv row from an engine event.
func NewPointRecord(session string, tick int64, dt float64, p sim.Point, speed float64) PointRecord {
	return PointRecord{
		Session:    session,
		Tick:       tick,
		SimTimeSec: float64(tick) * dt,
		Scorer:     p.Scorer.String(),
		ScoreLeft:  p.ScoreLeft,
		ScoreRight: p.ScoreRight,
		Rally:      p.Rally,
		ExitY:      p.Y,
		BallSpeed:  speed,
	}
}
