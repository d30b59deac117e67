package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/handpong/config"
	"github.com/pthm-cable/handpong/sim"
)

// Player turns engine events into sounds. It is a sim.Listener.
type Player struct {
	rate  beep.SampleRate
	vol   float64
	play  func(beep.Streamer)
	muted bool
}

var _ sim.Listener = (*Player)(nil)

// NewPlayer initializes the speaker and starts a mixer on it.
// Returns nil if audio is disabled.
func NewPlayer(cfg config.AudioConfig) (*Player, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}

	mixer := &beep.Mixer{}
	speaker.Play(mixer)
	return newPlayer(rate, cfg.Volume, func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}), nil
}

func newPlayer(rate beep.SampleRate, vol float64, play func(beep.Streamer)) *Player {
	return &Player{rate: rate, vol: vol, play: play}
}

// SetMuted silences future sounds.
func (p *Player) SetMuted(m bool) {
	if p != nil {
		p.muted = m
	}
}

// Muted reports whether the player is silenced.
func (p *Player) Muted() bool {
	return p == nil || p.muted
}

// OnEvent plays the sound for e, if it has one.
func (p *Player) OnEvent(e sim.Event) {
	if p.Muted() {
		return
	}
	switch e.(type) {
	case sim.PaddleHit:
		p.play(HitSound(p.rate, p.vol))
	case sim.WallBounce:
		p.play(WallSound(p.rate, p.vol))
	case sim.Point:
		p.play(PointSound(p.rate, p.vol))
	}
}
