package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/ui"
)

// Layout around the field
const (
	hudHeight    = 54
	footerHeight = 28
)

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.toggleRunning()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.mouseMode = !g.mouseMode
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.toggleTracker()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.panelState.ShowPreview = !g.panelState.ShowPreview
	}

	// Arrow keys move the paddle directly, bypassing smoothing
	step := g.cfg.Control.KeyboardStep
	if rl.IsKeyDown(rl.KeyUp) {
		g.session.Nudge(-step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.session.Nudge(step)
	}

	if g.mouseMode && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		mousePos := rl.GetMousePosition()
		if g.view.Contains(mousePos.X, mousePos.Y) {
			_, fy := g.view.ScreenToField(mousePos.X, mousePos.Y)
			g.pipeline.Pointer(float64(fy))
		}
	}
}

// handleResize refits the field and panel when the window changes size.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.width = float32(rl.GetScreenWidth())
	g.height = float32(rl.GetScreenHeight())

	pw := float32(g.cfg.Screen.PanelWidth)
	g.view.SetArea(0, hudHeight, g.width-pw, g.height-hudHeight-footerHeight)
	g.panel.SetBounds(int32(g.width-pw), 0, int32(pw), int32(g.height))
}

// applyPanel applies what the user changed in the control panel this frame.
func (g *Game) applyPanel(act ui.PanelActions) {
	s := &g.panelState

	if act.SmoothingChanged {
		g.session.SetSmoothing(float64(s.Smoothing))
	}
	if act.SensitivityChanged {
		g.session.SetSensitivity(float64(s.Sensitivity))
	}
	if act.TopChanged {
		g.pipeline.SetTop(float64(s.BandTop))
	}
	if act.BottomChanged {
		g.pipeline.SetBottom(float64(s.BandBottom))
	}
	if act.CalibrateTop {
		g.pipeline.CalibrateTop()
	}
	if act.CalibrateBot {
		g.pipeline.CalibrateBottom()
	}

	// The band may have been adjusted to keep its minimum span
	band := g.pipeline.Band()
	s.BandTop = float32(band.Top)
	s.BandBottom = float32(band.Bottom)

	// Starting or stopping the tracker below may override the mode
	g.mouseMode = s.MouseMode

	if act.ToggleRunning {
		g.toggleRunning()
	}
	if act.Reset {
		g.reset()
	}
	if act.ToggleTracker {
		g.toggleTracker()
	}

	if g.player != nil && g.player.Muted() != s.Muted {
		g.player.SetMuted(s.Muted)
	}
}

func (g *Game) toggleRunning() {
	g.running = !g.running
	slog.Debug("running toggled", "session", g.sessionID, "running", g.running)
}

func (g *Game) reset() {
	g.session.Reset()
	if g.preview != nil {
		g.preview.Clear()
	}
	slog.Info("game reset", "session", g.sessionID, "tick", g.tick)
}

func (g *Game) toggleTracker() {
	if g.tracker.active() {
		g.stopTracker()
		return
	}
	g.startTracker()
}
