// Package input turns hand-tracker and pointer readings into paddle targets.
package input

import (
	"context"
	"errors"
	"time"
)

// ErrSourceClosed is returned when a finite source has no more samples.
var ErrSourceClosed = errors.New("input source closed")

// Sample is one reading from a tracker. Y is the normalized vertical
// position, 0 at the top of the sensor and 1 at the bottom.
type Sample struct {
	At      time.Duration // Since the source started
	Y       float64
	Present bool // False when no hand was detected
}

// Source produces samples until its context is cancelled or it runs dry,
// then closes the channel.
type Source interface {
	Start(ctx context.Context) (<-chan Sample, error)
}

// Clocked is a source that can be pulled synchronously against a
// simulated clock, for runs faster than real time.
type Clocked interface {
	Until(at time.Duration) []Sample
}

var (
	_ Clocked = (*Synthetic)(nil)
	_ Clocked = (*Replay)(nil)
	_ Source  = (*Synthetic)(nil)
	_ Source  = (*Replay)(nil)
)

// Tracker status strings shown next to the camera preview.
const (
	StatusStarting = "Starting tracker..."
	StatusRunning  = "Tracker running"
	StatusStopped  = "Tracker stopped"
)

// StatusBlocked formats the status for a tracker that failed to start.
func StatusBlocked(err error) string {
	return "Tracker blocked - " + err.Error()
}

// Game status line values.
const (
	StatusPaused   = "paused"
	StatusTracking = "tracking"
	StatusMouse    = "mouse mode"
	StatusNoHand   = "no hand - using last position"
)

// StatusLine describes what currently drives the paddle.
func StatusLine(running, mouseMode, handSeen bool) string {
	switch {
	case !running:
		return StatusPaused
	case handSeen:
		return StatusTracking
	case mouseMode:
		return StatusMouse
	default:
		return StatusNoHand
	}
}
