package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Field.Width != 800 || cfg.Field.Height != 600 {
		t.Errorf("field = %vx%v, want 800x600", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Paddle.AIGain != 0.12 {
		t.Errorf("ai_gain = %v, want 0.12", cfg.Paddle.AIGain)
	}
	if cfg.Ball.Acceleration <= 1 {
		t.Errorf("acceleration = %v, want > 1", cfg.Ball.Acceleration)
	}
	if cfg.Band.Top != 0.05 || cfg.Band.Bottom != 0.95 || cfg.Band.MinSpan != 0.08 {
		t.Errorf("band = %+v, want {0.05 0.95 0.08}", cfg.Band)
	}
}

func TestDerivedPaddleRange(t *testing.T) {
	cfg := Default()

	if cfg.Derived.PaddleHalfHeight != 55 {
		t.Errorf("half height = %v, want 55", cfg.Derived.PaddleHalfHeight)
	}
	if cfg.Derived.PaddleMinY != 55 || cfg.Derived.PaddleMaxY != 545 {
		t.Errorf("paddle range = [%v, %v], want [55, 545]", cfg.Derived.PaddleMinY, cfg.Derived.PaddleMaxY)
	}
	if cfg.Derived.LeftPaddleX != 24 {
		t.Errorf("left paddle x = %v, want 24", cfg.Derived.LeftPaddleX)
	}
	if cfg.Derived.RightPaddleX != 800-24-12 {
		t.Errorf("right paddle x = %v, want %v", cfg.Derived.RightPaddleX, 800-24-12)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	overlay := []byte("control:\n  smoothing: 0.3\nfield:\n  height: 400\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Control.Smoothing != 0.3 {
		t.Errorf("smoothing = %v, want 0.3", cfg.Control.Smoothing)
	}
	if cfg.Field.Height != 400 {
		t.Errorf("field height = %v, want 400", cfg.Field.Height)
	}
	// Untouched fields keep their defaults
	if cfg.Field.Width != 800 {
		t.Errorf("field width = %v, want default 800", cfg.Field.Width)
	}
	if cfg.Derived.PaddleMaxY != 400-55 {
		t.Errorf("paddle max y = %v, want %v", cfg.Derived.PaddleMaxY, 400-55)
	}
}

func TestSmoothingClamped(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -0.5, 0},
		{"in range", 0.4, 0.4},
		{"too high", 0.99, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Control.Smoothing = tt.in
			cfg.computeDerived()
			if math.Abs(cfg.Control.Smoothing-tt.want) > 1e-9 {
				t.Errorf("smoothing = %v, want %v", cfg.Control.Smoothing, tt.want)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero field", func(c *Config) { c.Field.Width = 0 }},
		{"zero radius", func(c *Config) { c.Ball.Radius = 0 }},
		{"paddle taller than field", func(c *Config) { c.Paddle.Height = c.Field.Height + 1 }},
		{"zero sensitivity", func(c *Config) { c.Control.Sensitivity = 0 }},
		{"zero acceleration", func(c *Config) { c.Ball.Acceleration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Control.Sensitivity = 1.4

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Control.Sensitivity != 1.4 {
		t.Errorf("sensitivity = %v, want 1.4", loaded.Control.Sensitivity)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg() to panic before Init")
		}
	}()
	Cfg()
}
