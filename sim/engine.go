package sim

import (
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/handpong/systems"
)

// Phase names reported to a PhaseTimer during Advance.
const (
	PhasePursuit   = "pursuit"
	PhaseAI        = "ai"
	PhaseIntegrate = "integrate"
	PhaseWalls     = "walls"
	PhasePaddles   = "paddles"
	PhaseScoring   = "scoring"
)

// Phases lists the Advance phases in execution order.
var Phases = []string{PhasePursuit, PhaseAI, PhaseIntegrate, PhaseWalls, PhasePaddles, PhaseScoring}

// PhaseTimer receives per-phase timing callbacks from Advance.
type PhaseTimer interface {
	StartTick()
	StartPhase(phase string)
	EndTick()
}

// Engine owns one game state and applies the game rules to it.
// It is not safe for concurrent use; see Session.
type Engine struct {
	params    Params
	state     State
	rng       *rand.Rand
	now       func() time.Time
	listeners []Listener
	timer     PhaseTimer
	rally     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for serves.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a private random source used for serves.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithClock sets the clock stamped into State.LastUpdate.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listeners = append(e.listeners, l) }
}

// WithPhaseTimer reports Advance phase timings to t.
func WithPhaseTimer(t PhaseTimer) Option {
	return func(e *Engine) { e.timer = t }
}

// New creates an engine with everything centered and the ball moving
// down and to the right at the base speed.
func New(p Params, opts ...Option) *Engine {
	e := &Engine{
		params: p,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mid := p.PaddleRange().Clamp(p.Height / 2)
	e.state = State{
		BallX:      p.Width / 2,
		BallY:      p.Height / 2,
		BallVX:     p.BaseSpeed,
		BallVY:     p.BaseSpeed / 2,
		BallRadius: p.BallRadius,
		LeftY:      mid,
		RightY:     mid,
		TargetY:    mid,
		LastUpdate: e.now(),
	}
	return e
}

// AddListener registers l to receive future events.
func (e *Engine) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Params returns the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// SetState replaces the state. Paddle positions and the target are clamped
// into the legal range.
func (e *Engine) SetState(s State) {
	r := e.params.PaddleRange()
	s.LeftY = r.Clamp(s.LeftY)
	s.RightY = r.Clamp(s.RightY)
	s.TargetY = r.Clamp(s.TargetY)
	s.BallRadius = e.params.BallRadius
	e.state = s
}

// SetSmoothing changes the pursuit smoothing, clamped to [0, 0.9].
func (e *Engine) SetSmoothing(v float64) {
	e.params.Smoothing = systems.Clamp(v, 0, 0.9)
}

// SetSensitivity changes the target gain. Non-positive values are ignored.
func (e *Engine) SetSensitivity(v float64) {
	if v > 0 {
		e.params.Sensitivity = v
	}
}

func (e *Engine) emit(ev Event) {
	for _, l := range e.listeners {
		l.OnEvent(ev)
	}
}

func (e *Engine) phase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// Advance moves the game forward by dt seconds. When running is false only
// the timestamp changes. Negative or non-finite dt is treated as zero.
func (e *Engine) Advance(dt float64, running bool) State {
	if running {
		if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
			dt = 0
		}
		if e.timer != nil {
			e.timer.StartTick()
		}
		e.step(dt)
		if e.timer != nil {
			e.timer.EndTick()
		}
	}
	e.state.LastUpdate = e.now()
	return e.state
}

func (e *Engine) step(dt float64) {
	s := &e.state
	p := &e.params
	r := p.PaddleRange()

	e.phase(PhasePursuit)
	s.LeftY = systems.PursueTarget(s.LeftY, s.TargetY, p.Smoothing, r)

	e.phase(PhaseAI)
	s.RightY = systems.ChaseBall(s.RightY, s.BallY, p.AIGain, r)

	e.phase(PhaseIntegrate)
	s.BallX += s.BallVX * dt
	s.BallY += s.BallVY * dt

	e.phase(PhaseWalls)
	if edge, ok := bounceWalls(s, p.Height); ok {
		e.emit(WallBounce{Edge: edge, X: s.BallX, Y: s.BallY})
	}

	e.phase(PhasePaddles)
	if off, ok := e.hitLeft(p.LeftPaddleX()); ok {
		e.rally++
		e.emit(PaddleHit{Side: Left, Offset: off, Speed: s.BallSpeed(), X: s.BallX - s.BallRadius, Y: s.BallY})
	}
	if off, ok := e.hitRight(p.RightPaddleX()); ok {
		e.rally++
		e.emit(PaddleHit{Side: Right, Offset: off, Speed: s.BallSpeed(), X: s.BallX + s.BallRadius, Y: s.BallY})
	}

	e.phase(PhaseScoring)
	if s.BallX < -p.ScoreMargin {
		s.ScoreRight++
		e.emit(Point{Scorer: Right, ScoreLeft: s.ScoreLeft, ScoreRight: s.ScoreRight, Rally: e.rally, Y: s.BallY})
		e.Serve(1)
	}
	if s.BallX > p.Width+p.ScoreMargin {
		s.ScoreLeft++
		e.emit(Point{Scorer: Left, ScoreLeft: s.ScoreLeft, ScoreRight: s.ScoreRight, Rally: e.rally, Y: s.BallY})
		e.Serve(-1)
	}
}

// UpdateTarget steps the human paddle target toward desiredY, which is in
// field coordinates.
func (e *Engine) UpdateTarget(desiredY float64) {
	e.state.TargetY = systems.StepTarget(e.state.TargetY, desiredY, e.params.Sensitivity, e.params.PaddleRange())
}

// Nudge moves the human paddle by delta and pins its target there, bypassing
// smoothing. Used for keyboard control.
func (e *Engine) Nudge(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	r := e.params.PaddleRange()
	e.state.LeftY = r.Clamp(e.state.LeftY + delta)
	e.state.TargetY = e.state.LeftY
}

// Serve puts the ball back at the center. dir > 0 sends it right, dir < 0
// left, and 0 picks a side at random.
func (e *Engine) Serve(dir int) {
	p := &e.params
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		dir = 1
		if e.rng.Float64() < 0.5 {
			dir = -1
		}
	}

	angle := (e.rng.Float64()*2 - 1) * p.ServeAngle
	speed := p.BaseSpeed + e.rng.Float64()*p.SpeedJitter

	s := &e.state
	s.BallX = p.Width / 2
	s.BallY = p.Height / 2
	s.BallVX = math.Cos(angle) * speed * float64(dir)
	s.BallVY = math.Sin(angle) * speed
	e.rally = 0

	e.emit(Serve{Direction: dir, VX: s.BallVX, VY: s.BallVY})
}

// Reset clears both scores and serves in a random direction. Paddles and
// the target keep their positions.
func (e *Engine) Reset() {
	e.state.ScoreLeft = 0
	e.state.ScoreRight = 0
	e.emit(Reset{})
	e.Serve(0)
}
