package sim

import "sync"

// Session guards an Engine with a mutex so an input goroutine and a render
// goroutine can share it. Every call runs to completion before the next one
// starts, which keeps the per-frame phase order intact.
type Session struct {
	mu     sync.Mutex
	engine *Engine
}

// NewSession wraps e. The engine must not be used directly afterwards.
func NewSession(e *Engine) *Session {
	return &Session{engine: e}
}

// Advance calls Engine.Advance under the lock.
func (s *Session) Advance(dt float64, running bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Advance(dt, running)
}

// UpdateTarget calls Engine.UpdateTarget under the lock.
func (s *Session) UpdateTarget(desiredY float64) {
	s.mu.Lock()
	s.engine.UpdateTarget(desiredY)
	s.mu.Unlock()
}

// Nudge calls Engine.Nudge under the lock.
func (s *Session) Nudge(delta float64) {
	s.mu.Lock()
	s.engine.Nudge(delta)
	s.mu.Unlock()
}

// Reset calls Engine.Reset under the lock.
func (s *Session) Reset() {
	s.mu.Lock()
	s.engine.Reset()
	s.mu.Unlock()
}

// Serve calls Engine.Serve under the lock.
func (s *Session) Serve(dir int) {
	s.mu.Lock()
	s.engine.Serve(dir)
	s.mu.Unlock()
}

// SetSmoothing calls Engine.SetSmoothing under the lock.
func (s *Session) SetSmoothing(v float64) {
	s.mu.Lock()
	s.engine.SetSmoothing(v)
	s.mu.Unlock()
}

// SetSensitivity calls Engine.SetSensitivity under the lock.
func (s *Session) SetSensitivity(v float64) {
	s.mu.Lock()
	s.engine.SetSensitivity(v)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Params returns the engine parameters.
func (s *Session) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Params()
}
