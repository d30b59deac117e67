package telemetry

import (
	"math"
	"testing"
)

func TestComputeRallyStats(t *testing.T) {
	tests := []struct {
		name     string
		rallies  []float64
		mean     float64
		std      float64
		p50, p90 float64
	}{
		{"empty", nil, 0, 0, 0, 0},
		{"single", []float64{4}, 4, 0, 4, 4},
		{"one to ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 3.0277, 5, 9},
		{"constant", []float64{2, 2, 2}, 2, 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50, p90 := ComputeRallyStats(tt.rallies)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if p50 != tt.p50 || p90 != tt.p90 {
				t.Errorf("p50, p90 = %v, %v, want %v, %v", p50, p90, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeRallyStatsDoesNotSortInput(t *testing.T) {
	in := []float64{3, 1, 2}
	ComputeRallyStats(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input reordered: %v", in)
	}
}
