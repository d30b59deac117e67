package sim

import (
	"sync"
	"testing"
)

func TestSessionConcurrentInput(t *testing.T) {
	s := NewSession(newTestEngine())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.UpdateTarget(float64(i % 600))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Advance(1.0/60, true)
			_ = s.Snapshot()
		}
	}()
	wg.Wait()

	snap := s.Snapshot()
	if snap.TargetY < 55 || snap.TargetY > 545 {
		t.Errorf("target = %v, outside legal range", snap.TargetY)
	}
}

func TestSessionDelegates(t *testing.T) {
	s := NewSession(newTestEngine())

	s.Nudge(10)
	if got := s.Snapshot().LeftY; got != 310 {
		t.Errorf("left y after nudge = %v, want 310", got)
	}

	s.SetSensitivity(0.5)
	s.UpdateTarget(410)
	if got := s.Snapshot().TargetY; got != 360 {
		t.Errorf("target = %v, want 360", got)
	}

	s.SetSmoothing(2)
	if got := s.Params().Smoothing; got != 0.9 {
		t.Errorf("smoothing = %v, want clamped 0.9", got)
	}
}
