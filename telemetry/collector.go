package telemetry

import "github.com/pthm-cable/handpong/sim"

// Collector accumulates engine events within time windows and produces
// WindowStats. It is a sim.Listener and must be fed ticks through Advance.
type Collector struct {
	session             string
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	tick            int64
	windowStartTick int64
	scoreLeft       int
	scoreRight      int

	// Event counters for the current window
	pointsLeft   int
	pointsRight  int
	hitsLeft     int
	hitsRight    int
	wallBounces  int
	serves       int
	rallies      []float64
	maxBallSpeed float64

	// Since the last serve
	rallySpeed float64

	points []PointRecord
}

var _ sim.Listener = (*Collector)(nil)

// NewCollector creates a collector.
// windowDurationSec: simulated seconds per window
// dt: seconds per tick
func NewCollector(session string, windowDurationSec, dt float64) *Collector {
	ticks := int64(windowDurationSec / dt)
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{
		session:             session,
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticks,
		dt:                  dt,
	}
}

// OnEvent records an engine event.
func (c *Collector) OnEvent(e sim.Event) {
	switch ev := e.(type) {
	case sim.PaddleHit:
		if ev.Side == sim.Left {
			c.hitsLeft++
		} else {
			c.hitsRight++
		}
		c.rallySpeed = max(c.rallySpeed, ev.Speed)
	case sim.WallBounce:
		c.wallBounces++
	case sim.Point:
		if ev.Scorer == sim.Left {
			c.pointsLeft++
		} else {
			c.pointsRight++
		}
		c.scoreLeft, c.scoreRight = ev.ScoreLeft, ev.ScoreRight
		c.rallies = append(c.rallies, float64(ev.Rally))
		c.points = append(c.points, NewPointRecord(c.session, c.tick, c.dt, ev, c.rallySpeed))
	case sim.Serve:
		c.serves++
		c.rallySpeed = 0
	case sim.Reset:
		c.scoreLeft, c.scoreRight = 0, 0
	}
}

// Advance records the state after a tick.
func (c *Collector) Advance(tick int64, s sim.State) {
	c.tick = tick
	speed := s.BallSpeed()
	c.maxBallSpeed = max(c.maxBallSpeed, speed)
	c.rallySpeed = max(c.rallySpeed, speed)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Pending reports whether ticks have been recorded since the last flush.
func (c *Collector) Pending(currentTick int64) bool {
	return currentTick > c.windowStartTick
}

// DrainPoints returns the point records gathered since the last call.
func (c *Collector) DrainPoints() []PointRecord {
	out := c.points
	c.points = nil
	return out
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64) WindowStats {
	var returnRate float64
	if faced := c.hitsLeft + c.pointsRight; faced > 0 {
		returnRate = float64(c.hitsLeft) / float64(faced)
	}
	mean, std, p50, p90 := ComputeRallyStats(c.rallies)
	var rallyMax int
	for _, r := range c.rallies {
		rallyMax = max(rallyMax, int(r))
	}

	stats := WindowStats{
		Session:         c.session,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		ScoreLeft:       c.scoreLeft,
		ScoreRight:      c.scoreRight,
		PointsLeft:      c.pointsLeft,
		PointsRight:     c.pointsRight,
		HitsLeft:        c.hitsLeft,
		HitsRight:       c.hitsRight,
		WallBounces:     c.wallBounces,
		Serves:          c.serves,
		ReturnRate:      returnRate,
		Rallies:         len(c.rallies),
		RallyMean:       mean,
		RallyStd:        std,
		RallyP50:        p50,
		RallyP90:        p90,
		RallyMax:        rallyMax,
		MaxBallSpeed:    c.maxBallSpeed,
	}

	c.windowStartTick = currentTick
	c.pointsLeft = 0
	c.pointsRight = 0
	c.hitsLeft = 0
	c.hitsRight = 0
	c.wallBounces = 0
	c.serves = 0
	c.rallies = c.rallies[:0]
	c.maxBallSpeed = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
