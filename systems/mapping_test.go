package systems

import (
	"math"
	"testing"
)

func TestMapNormalizedY(t *testing.T) {
	band := Band{Top: 0.05, Bottom: 0.95, MinSpan: 0.08}

	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"above band saturates", 0.0, 0},
		{"band top", 0.05, 0},
		{"band center", 0.5, 0.5},
		{"band bottom", 0.95, 1},
		{"below band saturates", 1.0, 1},
		{"far outside", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapNormalizedY(tt.y, band)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MapNormalizedY(%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestMapNormalizedYMinSpan(t *testing.T) {
	// Collapsed band falls back to MinSpan as the divisor
	band := Band{Top: 0.5, Bottom: 0.5, MinSpan: 0.1}
	got := MapNormalizedY(0.55, band)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("MapNormalizedY = %v, want 0.5", got)
	}
}

func TestMapNormalizedYDegenerate(t *testing.T) {
	tests := []struct {
		name string
		band Band
		y    float64
	}{
		{"inverted zero min span", Band{Top: 0.8, Bottom: 0.2, MinSpan: 0}, 0.5},
		{"collapsed zero min span", Band{Top: 0.4, Bottom: 0.4, MinSpan: 0}, 0.4},
		{"nan sample", Band{Top: 0, Bottom: 1, MinSpan: 0.1}, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapNormalizedY(tt.y, tt.band)
			if math.IsNaN(got) || got < 0 || got > 1 {
				t.Errorf("MapNormalizedY = %v, want value in [0, 1]", got)
			}
		})
	}
}

func TestMapNormalizedYMonotonic(t *testing.T) {
	band := Band{Top: 0.2, Bottom: 0.7, MinSpan: 0.08}
	prev := -1.0
	for i := 0; i <= 100; i++ {
		got := MapNormalizedY(float64(i)/100, band)
		if got < prev {
			t.Fatalf("not monotonic at %d: %v < %v", i, got, prev)
		}
		prev = got
	}
}

func TestMapToField(t *testing.T) {
	got := FullBand().MapToField(0.25, 600)
	if got != 150 {
		t.Errorf("MapToField = %v, want 150", got)
	}
}

func TestBandWithTop(t *testing.T) {
	base := Band{Top: 0.05, Bottom: 0.95, MinSpan: 0.08}

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"plain", 0.2, 0.2},
		{"negative clamps to 0", -0.3, 0},
		{"crowding bottom keeps min span", 0.93, 0.87},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.WithTop(tt.v)
			if math.Abs(got.Top-tt.want) > 1e-9 {
				t.Errorf("Top = %v, want %v", got.Top, tt.want)
			}
			if got.Bottom != base.Bottom {
				t.Errorf("Bottom changed to %v", got.Bottom)
			}
		})
	}
}

func TestBandWithBottom(t *testing.T) {
	base := Band{Top: 0.05, Bottom: 0.95, MinSpan: 0.08}

	tests := []struct {
		name string
		v    float64
		want float64
	}{
		{"plain", 0.7, 0.7},
		{"above one clamps", 1.4, 1},
		{"crowding top keeps min span", 0.06, 0.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.WithBottom(tt.v)
			if math.Abs(got.Bottom-tt.want) > 1e-9 {
				t.Errorf("Bottom = %v, want %v", got.Bottom, tt.want)
			}
			if got.Top != base.Top {
				t.Errorf("Top changed to %v", got.Top)
			}
		})
	}
}
