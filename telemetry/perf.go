package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/handpong/sim"
)

// PerfSample holds timing data for a single Advance call.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
}

// PerfCollector tracks simulation timing over a rolling window.
// It satisfies sim.PhaseTimer.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string
	now           func() time.Time

	// Render frame timing, independent of ticks
	lastFrameTime time.Time
	frameDuration time.Duration
}

var _ sim.PhaseTimer = (*PerfCollector)(nil)

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		now:           time.Now,
	}
}

// StartTick begins timing a new Advance call.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.currentPhases = make(map[string]time.Duration, len(sim.Phases))
	p.lastPhase = ""
}

// StartPhase closes the running phase, if any, and opens the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndTick closes the last phase and stores the sample.
func (p *PerfCollector) EndTick() {
	now := p.now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame marks the start of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average tick, 0-100

	TicksPerSecond float64 // Throughput if Advance ran back to back

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.TickDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	stats.AvgTickDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_ns", s.AvgTickDuration.Nanoseconds()),
		slog.Int64("max_tick_ns", s.MaxTickDuration.Nanoseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range sim.Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row of perf.csv.
type PerfStatsCSV struct {
	Session      string  `csv:"session"`
	WindowEnd    int64   `csv:"window_end"`
	AvgTickNS    int64   `csv:"avg_tick_ns"`
	MinTickNS    int64   `csv:"min_tick_ns"`
	MaxTickNS    int64   `csv:"max_tick_ns"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	PursuitPct   float64 `csv:"pursuit_pct"`
	AIPct        float64 `csv:"ai_pct"`
	IntegratePct float64 `csv:"integrate_pct"`
	WallsPct     float64 `csv:"walls_pct"`
	PaddlesPct   float64 `csv:"paddles_pct"`
	ScoringPct   float64 `csv:"scoring_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(session string, windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		Session:      session,
		WindowEnd:    windowEnd,
		AvgTickNS:    s.AvgTickDuration.Nanoseconds(),
		MinTickNS:    s.MinTickDuration.Nanoseconds(),
		MaxTickNS:    s.MaxTickDuration.Nanoseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		PursuitPct:   s.PhasePct[sim.PhasePursuit],
		AIPct:        s.PhasePct[sim.PhaseAI],
		IntegratePct: s.PhasePct[sim.PhaseIntegrate],
		WallsPct:     s.PhasePct[sim.PhaseWalls],
		PaddlesPct:   s.PhasePct[sim.PhasePaddles],
		ScoringPct:   s.PhasePct[sim.PhaseScoring],
	}
}
