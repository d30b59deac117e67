// Package game wires the simulation, input sources, telemetry and drawing
// into the interactive window and the headless runner.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/handpong/audio"
	"github.com/pthm-cable/handpong/camera"
	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/renderer"
	"github.com/pthm-cable/handpong/sim"
	"github.com/pthm-cable/handpong/systems"
	"github.com/pthm-cable/handpong/telemetry"
	"github.com/pthm-cable/handpong/ui"
)

// Input modes selectable with Options.Input.
const (
	InputSynthetic = "synthetic"
	InputReplay    = "replay"
	InputMouse     = "mouse"
)

var errNoTracker = errors.New("no tracker source in mouse mode")

// previewLength is the number of tracker samples kept for the sensor preview.
const previewLength = 90

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Input          string  // synthetic, replay or mouse
	RecordPath     string  // CSV sample log of the tracker stream (empty = off)
	ReplayPath     string  // CSV sample log to play back when Input is replay
	ReplaySpeed    float64 // Replay time scale (0 = real time)
}

// Game holds the complete game state.
type Game struct {
	cfg       *config.Config
	opts      Options
	sessionID string

	session   *sim.Session
	params    sim.Params
	pipeline  *input.Pipeline
	particles *systems.ParticleSystem
	player    *audio.Player
	tracker   *tracker
	telemetry *telemetryHooks

	// Rendering, nil when headless
	view       *camera.Viewport
	field      *renderer.FieldRenderer
	sparks     *renderer.ParticleRenderer
	preview    *renderer.SensorPreview
	panel      *ui.ControlPanel
	hud        *ui.HUD
	panelState ui.PanelState

	// State
	tick      int64
	running   bool
	mouseMode bool
	lastFrame time.Time

	// Window dimensions
	width, height float32
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	if opts.StatsWindowSec <= 0 {
		opts.StatsWindowSec = cfg.Telemetry.StatsWindow
	}
	if opts.Input == "" {
		opts.Input = InputSynthetic
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		sessionID: telemetry.NewSessionID(),
		params:    sim.ParamsFromConfig(cfg),
		running:   false, // Paused until the player presses Start
		mouseMode: opts.Input == InputMouse,
		width:     cfg.Derived.ScreenW32,
		height:    cfg.Derived.ScreenH32,
	}

	tel, err := newTelemetryHooks(g.sessionID, cfg, opts, 1/float64(cfg.Screen.TargetFPS))
	if err != nil {
		return nil, err
	}
	g.telemetry = tel

	engine := sim.New(g.params,
		sim.WithSeed(opts.Seed),
		sim.WithPhaseTimer(tel.perf),
		sim.WithListener(tel.collector),
	)
	engine.Serve(0)

	if !opts.Headless {
		if cfg.Particles.Enabled {
			g.particles = systems.NewParticleSystem(systems.ParticleParams{
				Lifetime: float32(cfg.Particles.Lifetime),
				Speed:    float32(cfg.Particles.Speed),
				Drag:     float32(cfg.Particles.Drag),
				Max:      cfg.Particles.Max,
			}, opts.Seed)
			engine.AddListener(sparkEmitter{
				ps:       g.particles,
				perHit:   cfg.Particles.PerHit,
				perPoint: cfg.Particles.PerPoint,
				width:    cfg.Field.Width,
			})
		}

		player, err := audio.NewPlayer(cfg.Audio)
		if err != nil {
			// Sound is optional
			slog.Warn("audio disabled", "error", err)
		}
		if player != nil {
			g.player = player
			engine.AddListener(player)
		}
	}

	g.session = sim.NewSession(engine)
	g.pipeline = input.NewPipeline(bandFromConfig(cfg.Band), cfg.Field.Height, g.session, seconds(cfg.Tracker.RateWindow))

	source, err := g.newSource()
	if err != nil {
		g.telemetry.close()
		return nil, err
	}
	recorder, err := input.NewRecorder(opts.RecordPath)
	if err != nil {
		g.telemetry.close()
		return nil, err
	}
	g.tracker = newTracker(source, recorder)

	if !opts.Headless {
		g.initRendering()
		if source != nil {
			g.startTracker()
		}
	}

	slog.Info("session started",
		"session", g.sessionID,
		"seed", opts.Seed,
		"input", opts.Input,
		"output_dir", g.telemetry.output.Dir(),
	)
	return g, nil
}

// initRendering builds the viewport, renderers and panel for the current window size.
func (g *Game) initRendering() {
	pw := float32(g.cfg.Screen.PanelWidth)
	g.view = camera.New(0, hudHeight, g.width-pw, g.height-hudHeight-footerHeight, g.cfg.Derived.FieldW32, g.cfg.Derived.FieldH32)
	g.field = renderer.NewFieldRenderer(g.view, g.params)
	g.sparks = renderer.NewParticleRenderer(g.view)
	g.preview = renderer.NewSensorPreview(previewLength)
	g.panel = ui.NewControlPanel(int32(g.width-pw), 0, int32(pw), int32(g.height))
	g.hud = ui.NewHUD()

	band := g.pipeline.Band()
	g.panelState = ui.PanelState{
		Smoothing:   float32(g.cfg.Control.Smoothing),
		Sensitivity: float32(g.cfg.Control.Sensitivity),
		BandTop:     float32(band.Top),
		BandBottom:  float32(band.Bottom),
		Mirror:      g.cfg.Tracker.Mirror,
		ShowPreview: g.cfg.Tracker.ShowPreview,
	}
}

// newSource builds the tracker source selected by the options.
// Mouse mode has no tracker and returns nil.
func (g *Game) newSource() (input.Source, error) {
	switch g.opts.Input {
	case InputMouse:
		return nil, nil
	case InputSynthetic:
		return input.NewSynthetic(g.syntheticParams(), g.ballHeight, g.opts.Seed), nil
	case InputReplay:
		samples, err := input.LoadSamples(g.opts.ReplayPath)
		if err != nil {
			return nil, err
		}
		return input.NewReplay(samples, g.opts.ReplaySpeed), nil
	default:
		return nil, fmt.Errorf("unknown input mode %q", g.opts.Input)
	}
}

func (g *Game) syntheticParams() input.SyntheticParams {
	tc := g.cfg.Tracker
	return input.SyntheticParams{
		Rate:       tc.SampleRate,
		Reaction:   tc.Reaction,
		Tremor:     tc.Tremor,
		TremorFreq: tc.TremorFreq,
		Dropout:    tc.Dropout,
		Band:       bandFromConfig(g.cfg.Band),
	}
}

// ballHeight reports the ball height as a fraction of the field.
func (g *Game) ballHeight() float64 {
	return g.session.Snapshot().BallY / g.params.Height
}

// Update runs one frame: input, simulation and effects.
func (g *Game) Update() {
	now := time.Now()
	dt := g.cfg.Control.MaxDT
	if !g.lastFrame.IsZero() {
		dt = min(g.cfg.Control.MaxDT, now.Sub(g.lastFrame).Seconds())
	}
	g.lastFrame = now
	g.telemetry.perf.RecordFrame()

	g.handleInput()
	g.pollTracker()

	state := g.session.Advance(dt, g.running)
	g.tick++
	g.telemetry.afterTick(g.tick, state)

	if g.particles != nil {
		g.particles.Update(float32(dt))
	}
}

// Session returns the simulation session.
func (g *Game) Session() *sim.Session {
	return g.session
}

// SessionID returns the id stamped on logs and output files.
func (g *Game) SessionID() string {
	return g.sessionID
}

// Running reports whether the match clock is running.
func (g *Game) Running() bool {
	return g.running
}

// Tick returns the number of frames simulated.
func (g *Game) Tick() int64 {
	return g.tick
}

// Unload stops the tracker and flushes telemetry.
func (g *Game) Unload() {
	g.stopTracker()
	if err := g.tracker.recorder.Close(); err != nil {
		slog.Error("failed to close sample log", "error", err)
	}
	g.telemetry.finish(g.tick)
	g.telemetry.close()

	if !g.opts.Headless {
		slog.Info("session ended", "session", g.sessionID, "ticks", g.tick, "state", g.session.Snapshot())
	}
}

func bandFromConfig(b config.BandConfig) systems.Band {
	return systems.Band{Top: b.Top, Bottom: b.Bottom, MinSpan: b.MinSpan}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
