package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrRunnerStopped is returned by Run after Stop has been called.
var ErrRunnerStopped = errors.New("runner stopped")

// TickFunc observes the state after each tick.
type TickFunc func(tick int64, s State)

// Runner drives a Session at a fixed tick rate without a window.
type Runner struct {
	session  *Session
	dt       float64
	tps      int
	running  atomic.Bool
	tick     int64
	maxTicks int64
	hooks    []TickFunc

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRunner creates a runner advancing s by 1/tps seconds per tick.
// The runner starts in the running state.
func NewRunner(s *Session, tps int) *Runner {
	if tps < 1 {
		tps = 60
	}
	r := &Runner{
		session: s,
		dt:      1 / float64(tps),
		tps:     tps,
		stop:    make(chan struct{}),
	}
	r.running.Store(true)
	return r
}

// Session returns the session the runner drives.
func (r *Runner) Session() *Session { return r.session }

// SetMaxTicks makes Run return nil after n ticks (0 = no limit).
func (r *Runner) SetMaxTicks(n int64) { r.maxTicks = n }

// SetRunning pauses or resumes the simulation. Safe from any goroutine.
func (r *Runner) SetRunning(v bool) { r.running.Store(v) }

// Running reports whether ticks currently advance the simulation.
func (r *Runner) Running() bool { return r.running.Load() }

// Ticks returns the number of ticks taken so far.
func (r *Runner) Ticks() int64 { return r.tick }

// OnTick registers fn to be called after every tick.
// Must be called before Run or Step.
func (r *Runner) OnTick(fn TickFunc) {
	r.hooks = append(r.hooks, fn)
}

// Stop makes a pending or future Run return ErrRunnerStopped.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Run ticks the session until ctx is done, Stop is called, or the tick
// limit is reached. Desired field Y values received on samples are applied
// between ticks. A closed samples channel only stops input.
func (r *Runner) Run(ctx context.Context, samples <-chan float64) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.tps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.stop:
			return ErrRunnerStopped
		case y, ok := <-samples:
			if !ok {
				samples = nil
				continue
			}
			r.session.UpdateTarget(y)
		case <-ticker.C:
			r.advance()
			if r.maxTicks > 0 && r.tick >= r.maxTicks {
				return nil
			}
		}
	}
}

// Step runs n ticks synchronously and returns the final state.
func (r *Runner) Step(n int) State {
	for i := 0; i < n; i++ {
		r.advance()
	}
	return r.session.Snapshot()
}

func (r *Runner) advance() {
	s := r.session.Advance(r.dt, r.running.Load())
	r.tick++
	for _, fn := range r.hooks {
		fn(r.tick, s)
	}
}
