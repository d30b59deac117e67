package game

import (
	"github.com/pthm-cable/handpong/components"
	"github.com/pthm-cable/handpong/sim"
	"github.com/pthm-cable/handpong/systems"
)

// sparkEmitter turns engine events into particle bursts.
type sparkEmitter struct {
	ps       *systems.ParticleSystem
	perHit   int
	perPoint int
	width    float64
}

var _ sim.Listener = sparkEmitter{}

func (e sparkEmitter) OnEvent(ev sim.Event) {
	switch ev := ev.(type) {
	case sim.PaddleHit:
		// Sparks fly back into the field
		dir := float32(1)
		if ev.Side == sim.Right {
			dir = -1
		}
		e.ps.Burst(float32(ev.X), float32(ev.Y), e.perHit, dir, components.SparkPaddle)
	case sim.WallBounce:
		e.ps.Burst(float32(ev.X), float32(ev.Y), e.perHit/2, 0, components.SparkWall)
	case sim.Point:
		// The ball left on the loser's side
		x, dir := float32(0), float32(1)
		if ev.Scorer == sim.Left {
			x, dir = float32(e.width), -1
		}
		e.ps.Burst(x, float32(ev.Y), e.perPoint, dir, components.SparkPoint)
	case sim.Reset:
		e.ps.Clear()
	}
}
