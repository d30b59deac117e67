// Package renderer draws the game field with raylib.
package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/camera"
	"github.com/pthm-cable/handpong/sim"
)

var (
	fieldBg     = rl.Color{R: 12, G: 14, B: 20, A: 255}
	fieldBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
	netColor    = rl.Color{R: 70, G: 80, B: 95, A: 255}
	paddleColor = rl.Color{R: 230, G: 235, B: 240, A: 255}
	targetColor = rl.Color{R: 100, G: 150, B: 200, A: 160}
	ballColor   = rl.Color{R: 255, G: 214, B: 90, A: 255}
	scoreColor  = rl.Color{R: 200, G: 205, B: 215, A: 255}
)

// FieldRenderer draws the court, paddles, ball and scores.
type FieldRenderer struct {
	view   *camera.Viewport
	params sim.Params
}

// NewFieldRenderer creates a field renderer using the given viewport.
func NewFieldRenderer(view *camera.Viewport, params sim.Params) *FieldRenderer {
	return &FieldRenderer{view: view, params: params}
}

// Draw renders one frame of the field. showTarget draws a ghost where the
// left paddle is heading.
func (r *FieldRenderer) Draw(s sim.State, status string, showTarget bool) {
	v := r.view
	scale := v.Scale()
	x, y, w, h := v.FieldRect()

	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), fieldBg)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), fieldBorder)

	// Dashed net
	dash := max(4, 12*scale)
	cx := x + w/2
	for dy := float32(0); dy < h; dy += dash * 2 {
		rl.DrawRectangleV(rl.Vector2{X: cx - scale, Y: y + dy}, rl.Vector2{X: 2 * scale, Y: min(dash, h-dy)}, netColor)
	}

	p := r.params
	half := float32(p.HalfHeight())
	pw := float32(p.PaddleWidth)

	if showTarget {
		r.paddle(float32(p.LeftPaddleX()), float32(s.TargetY), pw, half, targetColor, true)
	}
	r.paddle(float32(p.LeftPaddleX()), float32(s.LeftY), pw, half, paddleColor, false)
	r.paddle(float32(p.RightPaddleX()), float32(s.RightY), pw, half, paddleColor, false)

	bx, by := v.FieldToScreen(float32(s.BallX), float32(s.BallY))
	rl.DrawCircleV(rl.Vector2{X: bx, Y: by}, float32(s.BallRadius)*scale, ballColor)

	// Scores
	size := int32(max(20, 48*scale))
	left := fmt.Sprintf("%d", s.ScoreLeft)
	right := fmt.Sprintf("%d", s.ScoreRight)
	lw := rl.MeasureText(left, size)
	rl.DrawText(left, int32(cx-w/8)-lw/2, int32(y+16*scale), size, scoreColor)
	rl.DrawText(right, int32(cx+w/8)-rl.MeasureText(right, size)/2, int32(y+16*scale), size, scoreColor)

	// Status line
	rl.DrawText(status, int32(x+8), int32(y+h)-20, 14, rl.Gray)
}

func (r *FieldRenderer) paddle(fx, centerY, width, half float32, c rl.Color, outline bool) {
	sx, sy := r.view.FieldToScreen(fx, centerY-half)
	scale := r.view.Scale()
	rect := rl.Rectangle{X: sx, Y: sy, Width: width * scale, Height: 2 * half * scale}
	if outline {
		rl.DrawRectangleLinesEx(rect, 1, c)
		return
	}
	rl.DrawRectangleRec(rect, c)
}
