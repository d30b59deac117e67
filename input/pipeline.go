package input

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pthm-cable/handpong/systems"
	"github.com/pthm-cable/handpong/telemetry"
)

// Target receives desired paddle positions in field coordinates.
// sim.Engine and sim.Session both satisfy it.
type Target interface {
	UpdateTarget(desiredY float64)
}

// TargetFunc adapts a function to a Target.
type TargetFunc func(desiredY float64)

// UpdateTarget calls f(desiredY).
func (f TargetFunc) UpdateTarget(desiredY float64) { f(desiredY) }

// Pipeline maps tracker samples through the active band into field space
// and forwards them to a Target. Safe for concurrent use.
type Pipeline struct {
	mu     sync.Mutex
	band   systems.Band
	height float64
	target Target

	lastY    float64
	handSeen bool
	samples  int
	rate     *telemetry.RateMeter
}

// NewPipeline creates a pipeline for a field of the given height.
func NewPipeline(band systems.Band, height float64, target Target, rateWindow time.Duration) *Pipeline {
	return &Pipeline{
		band:   band,
		height: height,
		target: target,
		lastY:  0.5,
		rate:   telemetry.NewRateMeter(rateWindow),
	}
}

// Feed applies one tracker sample. A sample without a hand re-applies the
// last seen position so the target keeps settling where the hand was.
func (p *Pipeline) Feed(s Sample) {
	p.mu.Lock()
	p.samples++
	if rate, ok := p.rate.Tick(); ok {
		slog.Debug("tracker rate", "fps", rate)
	}
	if s.Present {
		p.lastY = s.Y
	}
	p.handSeen = s.Present
	desired := p.band.MapToField(p.lastY, p.height)
	p.mu.Unlock()

	p.target.UpdateTarget(desired)
}

// Pointer forwards a pointer position that is already in field
// coordinates. Pointer input is always present and skips the band.
func (p *Pipeline) Pointer(fieldY float64) {
	p.target.UpdateTarget(fieldY)
}

// Run feeds every sample from ch until it closes.
func (p *Pipeline) Run(ch <-chan Sample) {
	for s := range ch {
		p.Feed(s)
	}
	p.mu.Lock()
	p.handSeen = false
	p.mu.Unlock()
}

// Band returns the active band.
func (p *Pipeline) Band() systems.Band {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.band
}

// SetTop moves the band top, keeping the minimum span.
func (p *Pipeline) SetTop(v float64) {
	p.mu.Lock()
	p.band = p.band.WithTop(v)
	p.mu.Unlock()
}

// SetBottom moves the band bottom, keeping the minimum span.
func (p *Pipeline) SetBottom(v float64) {
	p.mu.Lock()
	p.band = p.band.WithBottom(v)
	p.mu.Unlock()
}

// CalibrateTop sets the band top to the last seen hand position.
func (p *Pipeline) CalibrateTop() {
	p.mu.Lock()
	p.band = p.band.WithTop(p.lastY)
	p.mu.Unlock()
}

// CalibrateBottom sets the band bottom to the last seen hand position.
func (p *Pipeline) CalibrateBottom() {
	p.mu.Lock()
	p.band = p.band.WithBottom(p.lastY)
	p.mu.Unlock()
}

// Readout is a snapshot of the pipeline for display.
type Readout struct {
	LastY    float64
	HandSeen bool
	Rate     float64 // Samples per second
	Samples  int
}

// Readout returns the current readout.
func (p *Pipeline) Readout() Readout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Readout{
		LastY:    p.lastY,
		HandSeen: p.handSeen,
		Rate:     p.rate.Rate(),
		Samples:  p.samples,
	}
}
