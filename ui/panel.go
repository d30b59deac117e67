package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/input"
)

// PanelState is the panel's view of the game. Sliders and toggles edit it in place.
type PanelState struct {
	Smoothing   float32
	Sensitivity float32
	BandTop     float32
	BandBottom  float32

	Running     bool
	MouseMode   bool
	Mirror      bool
	ShowPreview bool
	Muted       bool
	TrackerOn   bool

	TrackerStatus string
	Readout       input.Readout
	RenderFPS     int32
}

// PanelActions reports what the user did during one Draw call.
type PanelActions struct {
	SmoothingChanged   bool
	SensitivityChanged bool
	TopChanged         bool
	BottomChanged      bool

	ToggleRunning bool
	Reset         bool
	ToggleTracker bool
	CalibrateTop  bool
	CalibrateBot  bool
}

// Slider ranges exposed to the player.
const (
	SmoothingMin   = 0
	SmoothingMax   = 0.9
	SensitivityMin = 0.3
	SensitivityMax = 2.0
	BandTopMax     = 0.5
	BandBottomMin  = 0.5
)

// ControlPanel renders the right-hand column of sliders, buttons and readouts.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewControlPanel creates a panel occupying the given rectangle.
func NewControlPanel(x, y, width, height int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// SetBounds moves the panel, typically after a window resize.
func (c *ControlPanel) SetBounds(x, y, width, height int32) {
	c.x, c.y, c.width, c.height = x, y, width, height
}

// Draw renders the panel and applies slider and toggle edits to s.
func (c *ControlPanel) Draw(s *PanelState) PanelActions {
	var act PanelActions
	if c.width <= 0 {
		return act
	}

	r := c.renderer
	th := r.Theme
	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := float32(c.x + th.Padding)
	inner := float32(c.width - th.Padding*2)
	y := c.y + th.Padding

	rl.DrawText("Controls", int32(x), y, 18, rl.White)
	y += th.LineHeight + 6

	// Response
	y = r.DrawSectionHeader(int32(x), y, "Paddle")
	y, act.SmoothingChanged = c.slider(x, y, inner, "Smoothing", &s.Smoothing, SmoothingMin, SmoothingMax)
	y, act.SensitivityChanged = c.slider(x, y, inner, "Sensitivity", &s.Sensitivity, SensitivityMin, SensitivityMax)
	y += 4

	// Band
	y = r.DrawSectionHeader(int32(x), y, "Active band")
	y, act.TopChanged = c.slider(x, y, inner, "Top", &s.BandTop, 0, BandTopMax)
	y, act.BottomChanged = c.slider(x, y, inner, "Bottom", &s.BandBottom, BandBottomMin, 1)
	half := (inner - 8) / 2
	act.CalibrateTop = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: th.ButtonHeight}, "Set top")
	act.CalibrateBot = gui.Button(rl.Rectangle{X: x + half + 8, Y: float32(y), Width: half, Height: th.ButtonHeight}, "Set bottom")
	y += int32(th.ButtonHeight) + 10

	// Game
	y = r.DrawSectionHeader(int32(x), y, "Game")
	act.ToggleRunning = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: th.ButtonHeight}, toggleText(s.Running, "Pause", "Start"))
	act.Reset = gui.Button(rl.Rectangle{X: x + half + 8, Y: float32(y), Width: half, Height: th.ButtonHeight}, "Reset")
	y += int32(th.ButtonHeight) + 6
	act.ToggleTracker = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: th.ButtonHeight}, toggleText(s.TrackerOn, "Stop tracker", "Start tracker"))
	y += int32(th.ButtonHeight) + 10

	y = c.checkBox(x, y, "Mouse mode", &s.MouseMode)
	y = c.checkBox(x, y, "Mirror preview", &s.Mirror)
	y = c.checkBox(x, y, "Show preview", &s.ShowPreview)
	y = c.checkBox(x, y, "Mute", &s.Muted)
	y += 6

	// Readouts
	y = r.DrawSectionHeader(int32(x), y, "Tracker")
	rl.DrawText(s.TrackerStatus, int32(x), y, th.FontSize, th.LabelColor)
	y += th.LineHeight
	y = r.DrawBar(int32(x), y, "yNorm", float32(s.Readout.LastY), int32(inner))
	y = r.DrawIndicator(int32(x), y, "Hand seen", s.Readout.HandSeen)
	y = r.DrawLabelValue(int32(x), y, "Tracker FPS", fmt.Sprintf("%.0f", s.Readout.Rate))
	r.DrawLabelValue(int32(x), y, "Render FPS", fmt.Sprintf("%d", s.RenderFPS))

	return act
}

// slider draws a labelled slider bound to v and reports whether it moved.
func (c *ControlPanel) slider(x float32, y int32, width float32, label string, v *float32, lo, hi float32) (int32, bool) {
	th := c.renderer.Theme
	rl.DrawText(fmt.Sprintf("%s  %.2f", label, *v), int32(x), y, th.FontSize, th.LabelColor)
	y += th.FontSize + 4

	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: float32(y), Width: width, Height: th.SliderHeight},
		"", "",
		*v, lo, hi,
	)
	changed := next != *v
	*v = next
	return y + int32(th.SliderHeight) + 6, changed
}

func (c *ControlPanel) checkBox(x float32, y int32, label string, v *bool) int32 {
	th := c.renderer.Theme
	*v = gui.CheckBox(rl.Rectangle{X: x, Y: float32(y), Width: 14, Height: 14}, label, *v)
	return y + th.LineHeight + 2
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
