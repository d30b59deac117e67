package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/ui"
)

var backgroundColor = rl.Color{R: 8, G: 9, B: 12, A: 255}

const controlsLegend = "[Space] pause  [R] reset  [Up/Down] move  [M] mouse mode  [T] tracker  [P] preview"

// Draw renders the game.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(backgroundColor)

	state := g.session.Snapshot()
	readout := g.pipeline.Readout()
	status := input.StatusLine(g.running, g.mouseMode, readout.HandSeen && g.tracker.active())

	g.field.Draw(state, status, g.mouseMode || g.tracker.active())
	if g.particles != nil {
		g.sparks.Draw(g.particles)
	}

	if g.panelState.ShowPreview {
		x, y, w, _ := g.view.FieldRect()
		pw := w * 0.18
		g.preview.Draw(x+w-pw-8, y+8, pw, pw*0.75, g.pipeline.Band(), g.panelState.Mirror)
	}

	g.hud.Draw(ui.HUDData{
		Title:   "Hand Pong",
		Session: g.sessionID,
		Tick:    g.tick,
		FPS:     rl.GetFPS(),
		Sparks:  g.sparkCount(),
	})
	g.hud.DrawControls(int32(g.height), controlsLegend)

	// Panel widgets mirror the live state, then report edits back
	s := &g.panelState
	s.Running = g.running
	s.MouseMode = g.mouseMode
	s.TrackerOn = g.tracker.active()
	s.Muted = g.player.Muted()
	s.TrackerStatus = g.tracker.status
	s.Readout = readout
	s.RenderFPS = rl.GetFPS()
	g.applyPanel(g.panel.Draw(s))
}

func (g *Game) sparkCount() int {
	if g.particles == nil {
		return 0
	}
	return g.particles.Count()
}
