// Band preview tool - interactive view of the sensor band mapping.
//
// Usage: go run ./cmd/bandpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/renderer"
	"github.com/pthm-cable/handpong/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	plotSize     = 400
	panelX       = plotSize + 220
	sliderWidth  = 260
)

var (
	plotBg    = rl.Color{R: 24, G: 26, B: 32, A: 255}
	gridColor = rl.Color{R: 50, G: 54, B: 64, A: 255}
	curve     = rl.Color{R: 120, G: 200, B: 255, A: 255}
	identity  = rl.Color{R: 90, G: 90, B: 90, A: 255}
)

// handParams are the synthetic hand settings exposed on the panel.
type handParams struct {
	Tremor  float32
	Dropout float32
}

func main() {
	configPath := flag.String("config", "", "Config YAML file (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Band Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	band := systems.Band{Top: cfg.Band.Top, Bottom: cfg.Band.Bottom, MinSpan: cfg.Band.MinSpan}
	hp := handParams{Tremor: float32(cfg.Tracker.Tremor), Dropout: float32(cfg.Tracker.Dropout)}

	// The synthetic hand chases a slow sine "ball" inside the band.
	var elapsed time.Duration
	ballAt := func() float64 {
		return 0.5 + 0.45*math.Sin(elapsed.Seconds()*0.8)
	}
	newHand := func() *input.Synthetic {
		return input.NewSynthetic(input.SyntheticParams{
			Rate:       cfg.Tracker.SampleRate,
			Reaction:   cfg.Tracker.Reaction,
			Tremor:     float64(hp.Tremor),
			TremorFreq: cfg.Tracker.TremorFreq,
			Dropout:    float64(hp.Dropout),
			Band:       band,
		}, ballAt, 1)
	}
	hand := newHand()
	preview := renderer.NewSensorPreview(150)
	var last input.Sample

	for !rl.WindowShouldClose() {
		elapsed += time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		for _, s := range hand.Until(elapsed) {
			preview.Push(s)
			last = s
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawMappingPlot(10, 10, band, last)
		preview.Draw(plotSize+30, 10, 160, plotSize, band, cfg.Tracker.Mirror)

		y := float32(10)
		rl.DrawText("Band Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		changed := false
		if v, ok := slider("Top (hand highest)", y, float32(band.Top), 0, 0.5); ok {
			band = band.WithTop(float64(v))
			changed = true
		}
		y += 45
		if v, ok := slider("Bottom (hand lowest)", y, float32(band.Bottom), 0.5, 1); ok {
			band = band.WithBottom(float64(v))
			changed = true
		}
		y += 45
		if v, ok := slider("Minimum span", y, float32(band.MinSpan), 0.01, 0.5); ok {
			band.MinSpan = float64(v)
			band = band.WithTop(band.Top)
			changed = true
		}
		y += 55

		rl.DrawLine(panelX, int32(y), panelX+sliderWidth+60, int32(y), rl.LightGray)
		y += 15
		rl.DrawText("Synthetic hand", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		if v, ok := slider("Tremor", y, hp.Tremor, 0, 0.1); ok {
			hp.Tremor = v
			changed = true
		}
		y += 45
		if v, ok := slider("Dropout", y, hp.Dropout, 0, 0.5); ok {
			hp.Dropout = v
			changed = true
		}
		y += 55

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Reset Band") {
			band = systems.Band{Top: cfg.Band.Top, Bottom: cfg.Band.Bottom, MinSpan: cfg.Band.MinSpan}
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Full Sensor") {
			band = systems.FullBand()
			band.MinSpan = cfg.Band.MinSpan
			changed = true
		}
		y += 50

		if changed {
			hand = newHand()
			preview.Clear()
			elapsed = 0
		}

		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range yamlLines(band) {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines(band), "\n"))
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider and reports the new value when it moved.
func slider(label string, y float32, value, lo, hi float32) (float32, bool) {
	rl.DrawText(label, panelX, int32(y), 14, rl.Gray)
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: y + 18, Width: sliderWidth, Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%.3f", value), panelX+sliderWidth+10, int32(y+20), 16, rl.DarkGray)
	return v, v != value
}

// drawMappingPlot plots normalized sensor height against mapped paddle
// height, with the latest sample marked on the curve.
func drawMappingPlot(x, y float32, band systems.Band, last input.Sample) {
	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: plotSize, Height: plotSize}, plotBg)
	for i := 1; i < 4; i++ {
		o := float32(i) * plotSize / 4
		rl.DrawLineV(rl.Vector2{X: x + o, Y: y}, rl.Vector2{X: x + o, Y: y + plotSize}, gridColor)
		rl.DrawLineV(rl.Vector2{X: x, Y: y + o}, rl.Vector2{X: x + plotSize, Y: y + o}, gridColor)
	}
	rl.DrawLineV(rl.Vector2{X: x, Y: y}, rl.Vector2{X: x + plotSize, Y: y + plotSize}, identity)

	const steps = 200
	var prev rl.Vector2
	for i := 0; i <= steps; i++ {
		in := float64(i) / steps
		out := systems.MapNormalizedY(in, band)
		pt := rl.Vector2{X: x + float32(in)*plotSize, Y: y + float32(out)*plotSize}
		if i > 0 {
			rl.DrawLineEx(prev, pt, 2, curve)
		}
		prev = pt
	}

	if last.Present {
		out := systems.MapNormalizedY(last.Y, band)
		rl.DrawCircleV(rl.Vector2{X: x + float32(last.Y)*plotSize, Y: y + float32(out)*plotSize}, 5, rl.Gold)
	}

	rl.DrawText("sensor y", int32(x), int32(y+plotSize+6), 14, rl.Gray)
	rl.DrawText(fmt.Sprintf("span %.3f", band.Span()), int32(x+plotSize-90), int32(y+plotSize+6), 14, rl.Gray)
}

func yamlLines(b systems.Band) []string {
	return []string{
		"band:",
		fmt.Sprintf("  top: %.3f", b.Top),
		fmt.Sprintf("  bottom: %.3f", b.Bottom),
		fmt.Sprintf("  min_span: %.3f", b.MinSpan),
	}
}
