package input

import (
	"context"
	"math/rand"
	"time"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/handpong/systems"
)

// SyntheticParams shapes the simulated hand.
type SyntheticParams struct {
	Rate       float64      // Samples per second
	Reaction   float64      // Fraction of the gap to the goal closed per sample
	Tremor     float64      // Noise amplitude in normalized units
	TremorFreq float64      // Noise frequency in Hz
	Dropout    float64      // Probability that a sample has no hand
	Band       systems.Band // Region of the sensor the hand moves in
}

// BallFunc reports the ball height as a fraction of the field height.
type BallFunc func() float64

// Synthetic is a simulated hand that follows the ball with lag and tremor.
// Next is deterministic for a given seed and call sequence.
type Synthetic struct {
	params SyntheticParams
	ball   BallFunc
	noise  opensimplex.Noise
	rng    *rand.Rand
	hand   float64
	nextAt time.Duration
}

// NewSynthetic creates a synthetic hand.
func NewSynthetic(params SyntheticParams, ball BallFunc, seed int64) *Synthetic {
	if params.Rate <= 0 {
		params.Rate = 30
	}
	return &Synthetic{
		params: params,
		ball:   ball,
		noise:  opensimplex.New(seed),
		rng:    rand.New(rand.NewSource(seed)),
		hand:   (params.Band.Top + params.Band.Bottom) / 2,
	}
}

// Interval returns the time between samples.
func (s *Synthetic) Interval() time.Duration {
	return time.Duration(float64(time.Second) / s.params.Rate)
}

// Next produces the sample taken at time at.
func (s *Synthetic) Next(at time.Duration) Sample {
	if s.params.Dropout > 0 && s.rng.Float64() < s.params.Dropout {
		return Sample{At: at}
	}

	// Aim where the band puts the ball
	b := s.params.Band
	goal := b.Top + systems.Clamp01(s.ball())*(b.Bottom-b.Top)
	s.hand += (goal - s.hand) * s.params.Reaction

	tremor := s.params.Tremor * s.noise.Eval2(at.Seconds()*s.params.TremorFreq, 0)
	return Sample{
		At:      at,
		Y:       systems.Clamp01(s.hand + tremor),
		Present: true,
	}
}

// Until returns the samples due up to and including at, advancing the
// source's own sample clock.
func (s *Synthetic) Until(at time.Duration) []Sample {
	var out []Sample
	for s.nextAt <= at {
		out = append(out, s.Next(s.nextAt))
		s.nextAt += s.Interval()
	}
	return out
}

// Start emits samples at the configured rate until ctx is done.
func (s *Synthetic) Start(ctx context.Context) (<-chan Sample, error) {
	ch := make(chan Sample, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.Interval())
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case ch <- s.Next(now.Sub(start)):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
