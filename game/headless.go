package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/sim"
)

// RunHeadless plays the match without a window until ctx is done or
// maxTicks ticks have run (0 = unlimited).
//
// With realtime false the simulation runs as fast as possible and the
// tracker source is pulled against the simulated clock, which makes runs
// reproducible for a given seed. With realtime true a sim.Runner ticks at
// the configured frame rate while the source runs on its own goroutine and
// hands desired positions to the runner over a channel.
func (g *Game) RunHeadless(ctx context.Context, maxTicks int64, realtime bool) error {
	if g.tracker.source == nil {
		return fmt.Errorf("headless mode needs a tracker source, got input %q", g.opts.Input)
	}

	runner := sim.NewRunner(g.session, g.cfg.Screen.TargetFPS)
	runner.SetMaxTicks(maxTicks)
	runner.OnTick(func(tick int64, s sim.State) {
		g.tick = tick
		g.telemetry.afterTick(tick, s)
	})

	slog.Info("starting headless simulation",
		"session", g.sessionID,
		"seed", g.opts.Seed,
		"max_ticks", maxTicks,
		"realtime", realtime,
	)

	var err error
	if realtime {
		err = g.runRealtime(ctx, runner)
	} else {
		err = g.runFast(ctx, runner, maxTicks)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	slog.Info("headless simulation finished",
		"session", g.sessionID,
		"tick", g.tick,
		"state", g.session.Snapshot(),
	)
	return err
}

func (g *Game) runFast(ctx context.Context, runner *sim.Runner, maxTicks int64) error {
	clocked, ok := g.tracker.source.(input.Clocked)
	if !ok {
		return fmt.Errorf("input %q cannot run faster than real time", g.opts.Input)
	}
	tickDur := time.Second / time.Duration(g.cfg.Screen.TargetFPS)

	for maxTicks == 0 || runner.Ticks() < maxTicks {
		if err := ctx.Err(); err != nil {
			return err
		}
		at := time.Duration(runner.Ticks()) * tickDur
		for _, s := range clocked.Until(at) {
			if err := g.tracker.recorder.Record(s); err != nil {
				return err
			}
			g.pipeline.Feed(s)
		}
		runner.Step(1)
	}
	return nil
}

func (g *Game) runRealtime(ctx context.Context, runner *sim.Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The runner goroutine owns the session; the pipeline only hands it targets
	desired := make(chan float64, 16)
	g.pipeline = input.NewPipeline(g.pipeline.Band(), g.params.Height, input.TargetFunc(func(y float64) {
		select {
		case desired <- y:
		case <-ctx.Done():
		}
	}), seconds(g.cfg.Tracker.RateWindow))

	ch, err := g.tracker.source.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting tracker: %w", err)
	}
	go g.pipeline.Run(g.tracker.recorder.Tee(ch))

	return runner.Run(ctx, desired)
}
