package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/sim"
	"github.com/pthm-cable/handpong/systems"
	"github.com/pthm-cable/handpong/telemetry"
)

// ticksPerSecond is the fixed simulation rate of evaluation runs.
const ticksPerSecond = 60

// FitnessEvaluator runs headless matches against the synthetic hand and
// scores how often the hand's paddle lets the ball through.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	seeds      []int64
	baseConfig *config.Config

	mu       sync.Mutex
	lastRuns []runResult // per seed, from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// runResult holds the outcome of a single match.
type runResult struct {
	stats telemetry.WindowStats
}

// concededPerReturn is the number of points the left side gave up for
// every ball it returned. The +1 keeps a run without returns finite and
// still worse than one with a few.
func (r runResult) concededPerReturn() float64 {
	return float64(r.stats.PointsRight) / float64(r.stats.HitsLeft+1)
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the mean points conceded per return across all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runMatch(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		total += r.concededPerReturn()
	}

	fe.mu.Lock()
	fe.lastRuns = results
	fe.mu.Unlock()

	fitness := total / float64(len(results))
	if math.IsNaN(fitness) {
		return math.Inf(1)
	}
	return fitness
}

// LastReturnRate returns the mean return rate of the most recent evaluation.
func (fe *FitnessEvaluator) LastReturnRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	if len(fe.lastRuns) == 0 {
		return 0
	}
	var sum float64
	for _, r := range fe.lastRuns {
		sum += r.stats.ReturnRate
	}
	return sum / float64(len(fe.lastRuns))
}

// runMatch plays one match at full speed. The synthetic hand moves within
// the base config's band while the pipeline maps through the tuned band,
// so the search learns a band that matches the hand's reach.
func (fe *FitnessEvaluator) runMatch(cfg *config.Config, seed int64) runResult {
	dt := 1.0 / ticksPerSecond
	simSeconds := float64(fe.maxTicks) * dt

	collector := telemetry.NewCollector("optimize", simSeconds+1, dt)
	engine := sim.New(sim.ParamsFromConfig(cfg), sim.WithSeed(seed), sim.WithListener(collector))
	engine.Serve(0)
	session := sim.NewSession(engine)
	runner := sim.NewRunner(session, ticksPerSecond)
	runner.OnTick(collector.Advance)

	hand := fe.baseConfig.Tracker
	synthetic := input.NewSynthetic(input.SyntheticParams{
		Rate:       hand.SampleRate,
		Reaction:   hand.Reaction,
		Tremor:     hand.Tremor,
		TremorFreq: hand.TremorFreq,
		Dropout:    hand.Dropout,
		Band:       systems.Band{Top: fe.baseConfig.Band.Top, Bottom: fe.baseConfig.Band.Bottom},
	}, func() float64 {
		return session.Snapshot().BallY / cfg.Field.Height
	}, seed)

	tuned := systems.Band{Top: cfg.Band.Top, Bottom: cfg.Band.Bottom, MinSpan: cfg.Band.MinSpan}
	pipeline := input.NewPipeline(tuned, cfg.Field.Height, session, time.Second)

	tickDur := time.Second / ticksPerSecond
	for runner.Ticks() < fe.maxTicks {
		for _, s := range synthetic.Until(time.Duration(runner.Ticks()) * tickDur) {
			pipeline.Feed(s)
		}
		runner.Step(1)
	}

	return runResult{stats: collector.Flush(runner.Ticks())}
}

// copyConfig returns a shallow copy of the base config. Config holds only
// value fields, so the copy is independent.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
