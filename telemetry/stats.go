package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated match statistics for one window of
// simulated time.
type WindowStats struct {
	Session         string  `csv:"session"`
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Score at window end
	ScoreLeft  int `csv:"score_left"`
	ScoreRight int `csv:"score_right"`

	// Events during window
	PointsLeft  int `csv:"points_left"`
	PointsRight int `csv:"points_right"`
	HitsLeft    int `csv:"hits_left"`
	HitsRight   int `csv:"hits_right"`
	WallBounces int `csv:"wall_bounces"`
	Serves      int `csv:"serves"`

	// ReturnRate is the share of balls reaching the human side that were
	// sent back: hits_left / (hits_left + points_right).
	ReturnRate float64 `csv:"return_rate"`

	// Rally length (paddle hits per point) distribution
	Rallies   int     `csv:"rallies"`
	RallyMean float64 `csv:"rally_mean"`
	RallyStd  float64 `csv:"rally_std"`
	RallyP50  float64 `csv:"rally_p50"`
	RallyP90  float64 `csv:"rally_p90"`
	RallyMax  int     `csv:"rally_max"`

	MaxBallSpeed float64 `csv:"max_ball_speed"`
}

// ComputeRallyStats returns the mean, standard deviation and empirical
// median and 90th percentile of rally lengths.
func ComputeRallyStats(rallies []float64) (mean, std, p50, p90 float64) {
	n := len(rallies)
	if n == 0 {
		return 0, 0, 0, 0
	}

	if n == 1 {
		mean = rallies[0]
	} else {
		mean, std = stat.MeanStdDev(rallies, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, rallies)
	sort.Float64s(sorted)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("score_left", s.ScoreLeft),
		slog.Int("score_right", s.ScoreRight),
		slog.Int("hits_left", s.HitsLeft),
		slog.Int("hits_right", s.HitsRight),
		slog.Float64("return_rate", s.ReturnRate),
		slog.Float64("rally_mean", s.RallyMean),
		slog.Float64("rally_p90", s.RallyP90),
		slog.Float64("max_ball_speed", s.MaxBallSpeed),
	)
}

// LogStats logs the window at info level.
func (s WindowStats) LogStats() {
	slog.Info("stats", "session", s.Session, "window", s)
}
