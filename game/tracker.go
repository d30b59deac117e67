package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/handpong/input"
)

// tracker owns the lifecycle of the hand-tracking source. Samples are fed
// to the pipeline from a goroutine; a copy is offered to the render thread
// for the sensor preview.
type tracker struct {
	source   input.Source
	recorder *input.Recorder
	status   string

	cancel  context.CancelFunc
	done    chan struct{}
	preview chan input.Sample
}

func newTracker(source input.Source, recorder *input.Recorder) *tracker {
	return &tracker{
		source:   source,
		recorder: recorder,
		status:   input.StatusStopped,
		preview:  make(chan input.Sample, previewLength),
	}
}

func (t *tracker) active() bool {
	return t.cancel != nil
}

// startTracker starts the source. A source that fails to start leaves the
// game in mouse mode with the error in the status text.
func (g *Game) startTracker() {
	t := g.tracker
	if t.active() {
		return
	}
	if t.source == nil {
		t.status = input.StatusBlocked(errNoTracker)
		return
	}

	t.status = input.StatusStarting
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := t.source.Start(ctx)
	if err != nil {
		cancel()
		t.status = input.StatusBlocked(err)
		g.mouseMode = true
		slog.Warn("tracker failed to start", "session", g.sessionID, "error", err)
		return
	}

	t.cancel = cancel
	t.done = make(chan struct{})
	t.status = input.StatusRunning
	g.mouseMode = false

	samples := tap(t.recorder.Tee(ch), t.preview)
	go func(done chan struct{}) {
		defer close(done)
		g.pipeline.Run(samples)
	}(t.done)

	slog.Info("tracker started", "session", g.sessionID, "input", g.opts.Input)
}

// stopTracker cancels the source and waits for the feed goroutine.
func (g *Game) stopTracker() {
	t := g.tracker
	if !t.active() {
		return
	}
	t.cancel()
	<-t.done
	t.cancel = nil
	t.status = input.StatusStopped
	slog.Info("tracker stopped", "session", g.sessionID, "samples", g.pipeline.Readout().Samples)
}

// pollTracker notices a source that ran dry and drains preview samples.
// Runs on the render thread.
func (g *Game) pollTracker() {
	t := g.tracker
	if t.active() {
		select {
		case <-t.done:
			t.cancel()
			t.cancel = nil
			t.status = input.StatusStopped
			slog.Info("tracker finished", "session", g.sessionID)
		default:
		}
	}

	for {
		select {
		case s := <-t.preview:
			if g.preview != nil {
				g.preview.Push(s)
			}
		default:
			return
		}
	}
}

// tap copies every sample into side without ever blocking on it.
func tap(in <-chan input.Sample, side chan<- input.Sample) <-chan input.Sample {
	out := make(chan input.Sample, 1)
	go func() {
		defer close(out)
		for s := range in {
			select {
			case side <- s:
			default:
			}
			out <- s
		}
	}()
	return out
}
