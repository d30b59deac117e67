package telemetry

import (
	"math"
	"time"
)

// RateMeter counts events and publishes a per-second rate once per window.
// The tracker readout uses it for samples per second.
type RateMeter struct {
	window time.Duration
	count  int
	start  time.Time
	rate   float64
	now    func() time.Time
}

// NewRateMeter creates a meter that publishes after each window.
func NewRateMeter(window time.Duration) *RateMeter {
	if window <= 0 {
		window = 500 * time.Millisecond
	}
	return &RateMeter{window: window, now: time.Now}
}

// Tick counts one event. It returns the new rate and true when a window
// closed on this call.
func (m *RateMeter) Tick() (float64, bool) {
	return m.TickAt(m.now())
}

// TickAt is Tick with an explicit timestamp.
func (m *RateMeter) TickAt(now time.Time) (float64, bool) {
	if m.start.IsZero() {
		m.start = now
	}
	m.count++
	elapsed := now.Sub(m.start)
	if elapsed <= m.window {
		return m.rate, false
	}
	m.rate = math.Round(float64(m.count) / elapsed.Seconds())
	m.start = now
	m.count = 0
	return m.rate, true
}

// Rate returns the last published rate.
func (m *RateMeter) Rate() float64 {
	return m.rate
}

// Reset clears the meter.
func (m *RateMeter) Reset() {
	m.count = 0
	m.start = time.Time{}
	m.rate = 0
}
