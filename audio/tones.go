// Package audio plays short synthesized blips for game events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     Wave
	rate     beep.SampleRate
}

// NewTone creates a streamer producing freq Hz for d.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, length: rate.N(d), wave: wave, rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.position >= t.length {
		return 0, false
	}
	for i := range samples {
		if t.position >= t.length {
			return i, true
		}
		var v float64
		if t.wave == WaveSquare {
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		} else {
			v = math.Sin(2 * math.Pi * t.phase)
		}
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// fade applies a linear release over the last part of a stream so blips
// end without a click.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
	release  int
}

// NewFade shapes s, whose length is d, with a release of the given length.
func NewFade(s beep.Streamer, d, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &fade{streamer: s, total: total, release: min(rate.N(release), total)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	start := f.total - f.release
	for i := 0; i < n; i++ {
		if f.release > 0 && f.position >= start {
			vol := float64(f.total-f.position) / float64(f.release)
			samples[i][0] *= vol
			samples[i][1] *= vol
		}
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// withVolume scales s by vol, where 1 is unchanged and 0 is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func blip(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return NewFade(NewTone(freq, d, wave, rate), d, d/3, rate)
}

// HitSound is the paddle contact blip.
func HitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(blip(440, 60*time.Millisecond, WaveSquare, rate), vol*0.6)
}

// WallSound is the lower, shorter wall bounce blip.
func WallSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(blip(220, 40*time.Millisecond, WaveSquare, rate), vol*0.5)
}

// PointSound is a falling two-note chime.
func PointSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return withVolume(beep.Seq(
		blip(880, 90*time.Millisecond, WaveSine, rate),
		blip(660, 140*time.Millisecond, WaveSine, rate),
	), vol)
}
