// Package main tunes paddle response and band parameters with CMA-ES.
package main

import (
	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/systems"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Bounds match the control panel sliders.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "smoothing", Path: "control.smoothing", Min: 0, Max: 0.9, Default: 0.65},
			{Name: "sensitivity", Path: "control.sensitivity", Min: 0.3, Max: 2.0, Default: 1.0},
			{Name: "band_top", Path: "band.top", Min: 0, Max: 0.5, Default: 0.05},
			{Name: "band_bottom", Path: "band.bottom", Min: 0.5, Max: 1, Default: 0.95},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// FromConfig reads the current parameter values from a config.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	return pv.Clamp([]float64{
		cfg.Control.Smoothing,
		cfg.Control.Sensitivity,
		cfg.Band.Top,
		cfg.Band.Bottom,
	})
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = systems.Clamp(v[i], spec.Min, spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// The band is applied through the same safe edits as the control panel.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Control.Smoothing = clamped[0]
	cfg.Control.Sensitivity = clamped[1]

	band := systems.Band{Top: cfg.Band.Top, Bottom: cfg.Band.Bottom, MinSpan: cfg.Band.MinSpan}
	band = band.WithTop(clamped[2]).WithBottom(clamped[3])
	cfg.Band.Top = band.Top
	cfg.Band.Bottom = band.Bottom
}
