package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/camera"
	"github.com/pthm-cable/handpong/components"
	"github.com/pthm-cable/handpong/systems"
)

// ParticleRenderer renders impact sparks.
type ParticleRenderer struct {
	view *camera.Viewport
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(view *camera.Viewport) *ParticleRenderer {
	return &ParticleRenderer{view: view}
}

// Draw renders all live sparks.
func (r *ParticleRenderer) Draw(ps *systems.ParticleSystem) {
	scale := r.view.Scale()
	ps.Each(func(pos components.Position, spark components.Spark) {
		fade := spark.Fade()

		var color rl.Color
		switch spark.Kind {
		case components.SparkPaddle:
			// Warm white
			color = rl.Color{R: 255, G: 240, B: 200, A: uint8(fade * 230)}
		case components.SparkWall:
			// Cyan
			color = rl.Color{R: 90, G: 200, B: 230, A: uint8(fade * 180)}
		case components.SparkPoint:
			// Orange
			color = rl.Color{R: 255, G: 150, B: 50, A: uint8(fade * 220)}
		}

		size := max(0.5, spark.Size*fade*scale)
		sx, sy := r.view.FieldToScreen(pos.X, pos.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	})
}
