// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure returned from Load.
var ErrInvalid = errors.New("invalid config")

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Ball      BallConfig      `yaml:"ball"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	Control   ControlConfig   `yaml:"control"`
	Band      BandConfig      `yaml:"band"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Audio     AudioConfig     `yaml:"audio"`
	Particles ParticlesConfig `yaml:"particles"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel column on the right (0 = hidden)
}

// FieldConfig holds simulation-space dimensions.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// BallConfig holds ball geometry and serve/collision response.
type BallConfig struct {
	Radius       float64 `yaml:"radius"`
	BaseSpeed    float64 `yaml:"base_speed"`    // Serve speed before jitter
	SpeedJitter  float64 `yaml:"speed_jitter"`  // speed = base + uniform(0, jitter)
	ServeAngle   float64 `yaml:"serve_angle"`   // Serve angle drawn from [-a, a) radians
	Acceleration float64 `yaml:"acceleration"`  // Horizontal speed multiplier per paddle hit
	Spin         float64 `yaml:"spin"`          // Vertical kick per unit of paddle offset
	ScoreMargin  float64 `yaml:"score_margin"`  // Distance past the field edge before a point counts
	MaxSpeed     float64 `yaml:"max_speed"`     // Cap on |vx| after a hit (0 = unbounded)
}

// PaddleConfig holds paddle geometry and the AI opponent gain.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`  // Gap between field edge and paddle
	AIGain float64 `yaml:"ai_gain"` // Per-tick proportional gain of the right paddle
}

// ControlConfig holds human-paddle response settings.
type ControlConfig struct {
	Smoothing    float64 `yaml:"smoothing"`     // Paddle pursuit decay, [0, 0.9]
	Sensitivity  float64 `yaml:"sensitivity"`   // Target gain per input sample
	KeyboardStep float64 `yaml:"keyboard_step"` // Field units per frame while a key is held
	MaxDT        float64 `yaml:"max_dt"`        // Frame delta cap in seconds
}

// BandConfig is the active band of the sensor range mapped onto the full field height.
type BandConfig struct {
	Top     float64 `yaml:"top"`
	Bottom  float64 `yaml:"bottom"`
	MinSpan float64 `yaml:"min_span"`
}

// TrackerConfig holds settings for hand-tracking sources.
type TrackerConfig struct {
	Mirror      bool    `yaml:"mirror"`       // Mirror the sensor preview horizontally
	ShowPreview bool    `yaml:"show_preview"` // Draw the sensor band preview
	RateWindow  float64 `yaml:"rate_window"`  // Seconds per tracker FPS readout

	// Synthetic hand source
	SampleRate float64 `yaml:"sample_rate"` // Samples per second
	Reaction   float64 `yaml:"reaction"`    // Fraction of the gap to the ball closed per sample
	Tremor     float64 `yaml:"tremor"`      // Noise amplitude in normalized units
	TremorFreq float64 `yaml:"tremor_freq"` // Noise frequency in Hz
	Dropout    float64 `yaml:"dropout"`     // Probability a sample reports no hand
}

// AudioConfig holds sound settings.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// ParticlesConfig holds impact spark settings.
type ParticlesConfig struct {
	Enabled  bool    `yaml:"enabled"`
	PerHit   int     `yaml:"per_hit"`
	PerPoint int     `yaml:"per_point"`
	Lifetime float64 `yaml:"lifetime"` // Seconds
	Speed    float64 `yaml:"speed"`
	Drag     float64 `yaml:"drag"` // Velocity decay per second
	Max      int     `yaml:"max"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	PaddleHalfHeight float64 // Paddle.Height / 2
	PaddleMinY       float64 // Lowest legal paddle center
	PaddleMaxY       float64 // Highest legal paddle center
	LeftPaddleX      float64 // Left edge of the left paddle
	RightPaddleX     float64 // Left edge of the right paddle
	FieldW32         float32
	FieldH32         float32
	ScreenW32        float32
	ScreenH32        float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults without touching the global config.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the engine cannot represent.
// Control values that are merely out of range are clamped later instead.
func (c *Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size, got %vx%v", ErrInvalid, c.Field.Width, c.Field.Height)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalid)
	case c.Paddle.Height <= 0 || c.Paddle.Width <= 0:
		return fmt.Errorf("%w: paddle must have positive size", ErrInvalid)
	case c.Paddle.Height > c.Field.Height:
		return fmt.Errorf("%w: paddle height %v exceeds field height %v", ErrInvalid, c.Paddle.Height, c.Field.Height)
	case c.Ball.Acceleration <= 0:
		return fmt.Errorf("%w: ball acceleration must be positive", ErrInvalid)
	case c.Control.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity must be positive", ErrInvalid)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("%w: audio sample rate must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Smoothing above 0.9 makes the paddle feel stuck
	if c.Control.Smoothing < 0 {
		c.Control.Smoothing = 0
	} else if c.Control.Smoothing > 0.9 {
		c.Control.Smoothing = 0.9
	}
	if c.Control.MaxDT <= 0 {
		c.Control.MaxDT = 0.033
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 120
	}
	if c.Tracker.RateWindow <= 0 {
		c.Tracker.RateWindow = 0.5
	}

	half := c.Paddle.Height / 2
	c.Derived.PaddleHalfHeight = half
	c.Derived.PaddleMinY = half
	c.Derived.PaddleMaxY = c.Field.Height - half
	c.Derived.LeftPaddleX = c.Paddle.Margin
	c.Derived.RightPaddleX = c.Field.Width - c.Paddle.Margin - c.Paddle.Width

	c.Derived.FieldW32 = float32(c.Field.Width)
	c.Derived.FieldH32 = float32(c.Field.Height)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
