package game

import (
	"log/slog"

	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/sim"
	"github.com/pthm-cable/handpong/telemetry"
)

// telemetryHooks bundles per-tick telemetry shared by the window and the
// headless runner.
type telemetryHooks struct {
	session   string
	logStats  bool
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	bookmarks *telemetry.BookmarkDetector
}

func newTelemetryHooks(session string, cfg *config.Config, opts Options, dt float64) (*telemetryHooks, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir, session)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	return &telemetryHooks{
		session:   session,
		logStats:  opts.LogStats,
		collector: telemetry.NewCollector(session, opts.StatsWindowSec, dt),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:    output,
		bookmarks: telemetry.NewBookmarkDetector(10),
	}, nil
}

// afterTick records the state and flushes a window when one is complete.
// It has the shape of a sim.TickFunc.
func (t *telemetryHooks) afterTick(tick int64, s sim.State) {
	t.collector.Advance(tick, s)

	if points := t.collector.DrainPoints(); len(points) > 0 {
		if err := t.output.WritePoints(points); err != nil {
			slog.Error("failed to write points", "error", err)
		}
	}

	if t.collector.ShouldFlush(tick) {
		t.flush(tick)
	}
}

// flush closes the current stats window and checks it for bookmarks.
func (t *telemetryHooks) flush(tick int64) {
	stats := t.collector.Flush(tick)
	perfStats := t.perf.Stats()

	if t.logStats {
		stats.LogStats()
		slog.Info("perf", "session", t.session, "perf", perfStats)
	}

	if err := t.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := t.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	bookmarks := t.bookmarks.Check(stats)
	if t.logStats {
		for _, bm := range bookmarks {
			bm.LogBookmark()
		}
	}
	if err := t.output.WriteBookmarks(bookmarks); err != nil {
		slog.Error("failed to write bookmarks", "error", err)
	}
}

// finish flushes a partial window so short sessions still leave a stats row.
func (t *telemetryHooks) finish(tick int64) {
	if t.collector.Pending(tick) {
		t.flush(tick)
	}
}

func (t *telemetryHooks) close() {
	if err := t.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
