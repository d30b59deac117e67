package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the data needed to render the top bar.
type HUDData struct {
	Title   string
	Session string
	Tick    int64
	FPS     int32
	Sparks  int
}

// HUD renders the heads-up display above the field.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 8, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Sparks: %d | %s", data.Tick, data.FPS, data.Sparks, shortID(data.Session)),
		10, 32, 14, h.renderer.Theme.LabelColor,
	)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-22, 14, rl.Gray)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
