package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/handpong/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.3, 1.5, 0.1, 0.8}

	got := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(got[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], raw[i])
		}
	}
}

func TestApplyToConfigKeepsBandSpan(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	// Top and bottom pushed onto each other
	pv.ApplyToConfig(cfg, []float64{0.5, 1, 0.5, 0.5})

	if span := cfg.Band.Bottom - cfg.Band.Top; span < cfg.Band.MinSpan-1e-9 {
		t.Errorf("band span = %v, want >= %v", span, cfg.Band.MinSpan)
	}
	if cfg.Control.Smoothing != 0.5 {
		t.Errorf("smoothing = %v, want 0.5", cfg.Control.Smoothing)
	}
}

func TestClampOutOfRange(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 10, -1, 10})
	want := []float64{0, 2, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("plays full matches")
	}
	pv := NewParamVector()
	cfg := config.Default()
	fe := NewFitnessEvaluator(pv, 60*30, []int64{1, 2}, cfg)

	x := pv.FromConfig(cfg)
	a := fe.Evaluate(x)
	b := fe.Evaluate(x)

	if math.IsNaN(a) || math.IsInf(a, 0) || a < 0 {
		t.Fatalf("fitness = %v, want finite and >= 0", a)
	}
	if a != b {
		t.Errorf("fitness not reproducible: %v then %v", a, b)
	}
	if rate := fe.LastReturnRate(); rate < 0 || rate > 1 {
		t.Errorf("return rate = %v, want within [0, 1]", rate)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{65 * time.Second, "1m05s"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1h02m03s"},
		{0, "0m00s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
