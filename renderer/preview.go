package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/systems"
)

var (
	previewBg   = rl.Color{R: 18, G: 20, B: 26, A: 230}
	bandFill    = rl.Color{R: 100, G: 150, B: 200, A: 50}
	bandEdge    = rl.Color{R: 100, G: 150, B: 200, A: 200}
	traceColor  = rl.Color{R: 120, G: 220, B: 140, A: 255}
	lostColor   = rl.Color{R: 200, G: 100, B: 100, A: 255}
	handColor   = rl.Color{R: 255, G: 214, B: 90, A: 255}
	previewText = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// SensorPreview shows the recent raw sensor trace with the active band
// overlaid, standing in for the camera picture.
type SensorPreview struct {
	trace []input.Sample
	next  int
	full  bool
}

// NewSensorPreview creates a preview remembering the last n samples.
func NewSensorPreview(n int) *SensorPreview {
	return &SensorPreview{trace: make([]input.Sample, max(2, n))}
}

// Push records a sample.
func (p *SensorPreview) Push(s input.Sample) {
	p.trace[p.next] = s
	p.next = (p.next + 1) % len(p.trace)
	if p.next == 0 {
		p.full = true
	}
}

// Clear forgets the trace.
func (p *SensorPreview) Clear() {
	p.next = 0
	p.full = false
}

// Draw renders the preview into a screen rectangle. Newest samples are at
// the right edge, or the left edge when mirrored.
func (p *SensorPreview) Draw(x, y, w, h float32, band systems.Band, mirror bool) {
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, previewBg)

	top := y + float32(band.Top)*h
	bottom := y + float32(band.Bottom)*h
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: top, Width: w, Height: bottom - top}, bandFill)
	rl.DrawLineEx(rl.Vector2{X: x, Y: top}, rl.Vector2{X: x + w, Y: top}, 1, bandEdge)
	rl.DrawLineEx(rl.Vector2{X: x, Y: bottom}, rl.Vector2{X: x + w, Y: bottom}, 1, bandEdge)

	n := p.next
	start := 0
	if p.full {
		n = len(p.trace)
		start = p.next
	}
	if n > 1 {
		step := w / float32(len(p.trace)-1)
		var prev rl.Vector2
		for i := 0; i < n; i++ {
			s := p.trace[(start+i)%len(p.trace)]
			px := x + float32(len(p.trace)-n+i)*step
			if mirror {
				px = x + w - (px - x)
			}
			pt := rl.Vector2{X: px, Y: y + float32(systems.Clamp01(s.Y))*h}
			if i > 0 {
				c := traceColor
				if !s.Present {
					c = lostColor
				}
				rl.DrawLineEx(prev, pt, 1.5, c)
			}
			prev = pt
		}
		if mirror {
			rl.DrawCircleV(rl.Vector2{X: x, Y: prev.Y}, 4, handColor)
		} else {
			rl.DrawCircleV(rl.Vector2{X: x + w, Y: prev.Y}, 4, handColor)
		}
	}

	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: w, Height: h}, 1, fieldBorder)
	rl.DrawText("sensor", int32(x+4), int32(y+4), 10, previewText)
}
