package sim

import (
	"math"
	"testing"
	"time"
)

const eps = 1e-9

// fakeClock returns a clock that advances one millisecond per call.
func fakeClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithSeed(1), WithClock(fakeClock())}, opts...)
	return New(DefaultParams(), opts...)
}

// recorder collects emitted events.
type recorder struct {
	events []Event
}

func (r *recorder) OnEvent(e Event) { r.events = append(r.events, e) }

func TestNewCentered(t *testing.T) {
	e := newTestEngine()
	s := e.State()

	if s.BallX != 400 || s.BallY != 300 {
		t.Errorf("ball = (%v, %v), want (400, 300)", s.BallX, s.BallY)
	}
	if s.BallVX != 260 || s.BallVY != 130 {
		t.Errorf("velocity = (%v, %v), want (260, 130)", s.BallVX, s.BallVY)
	}
	if s.LeftY != 300 || s.RightY != 300 || s.TargetY != 300 {
		t.Errorf("paddles = %v/%v target %v, want all 300", s.LeftY, s.RightY, s.TargetY)
	}
	if s.ScoreLeft != 0 || s.ScoreRight != 0 {
		t.Errorf("scores = %d:%d, want 0:0", s.ScoreLeft, s.ScoreRight)
	}
}

func TestAdvancePausedOnlyTouchesTimestamp(t *testing.T) {
	e := newTestEngine()
	e.UpdateTarget(500)
	before := e.State()

	for _, dt := range []float64{0, 1.0 / 60, 0.5} {
		after := e.Advance(dt, false)
		if !after.LastUpdate.After(before.LastUpdate) {
			t.Errorf("dt=%v: timestamp not updated", dt)
		}
		after.LastUpdate = before.LastUpdate
		if after != before {
			t.Errorf("dt=%v: paused advance changed state\n got %+v\nwant %+v", dt, after, before)
		}
	}
}

func TestAdvanceEndToEnd(t *testing.T) {
	e := newTestEngine()
	e.SetState(State{BallX: 400, BallY: 300, BallVX: 260, BallVY: 0, LeftY: 300, RightY: 300, TargetY: 300})

	s := e.Advance(1.0/60, true)

	if math.Abs(s.BallX-(400+260.0/60)) > eps {
		t.Errorf("ball x = %v, want ~404.33", s.BallX)
	}
	if s.BallY != 300 {
		t.Errorf("ball y = %v, want 300", s.BallY)
	}
	if math.Abs(s.LeftY-300) > 1 || math.Abs(s.RightY-300) > 1 {
		t.Errorf("paddles moved too far: left %v right %v", s.LeftY, s.RightY)
	}
}

func TestWallBounce(t *testing.T) {
	tests := []struct {
		name   string
		y, vy  float64
		wantY  float64
		wantUp bool // true if vy should end negative
		edge   Edge
	}{
		{"top", 5, -100, 8, false, Top},
		{"bottom", 595, 100, 592, true, Bottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(WithListener(rec))
			e.SetState(State{BallX: 400, BallY: tt.y, BallVX: 0, BallVY: tt.vy, LeftY: 300, RightY: 300, TargetY: 300})

			s := e.Advance(0.01, true)
			if s.BallY != tt.wantY {
				t.Errorf("ball y = %v, want %v", s.BallY, tt.wantY)
			}
			if (s.BallVY < 0) != tt.wantUp || s.BallVY == 0 {
				t.Errorf("ball vy = %v, wrong direction", s.BallVY)
			}
			if math.Abs(math.Abs(s.BallVY)-math.Abs(tt.vy)) > eps {
				t.Errorf("|vy| = %v, want %v (elastic)", math.Abs(s.BallVY), math.Abs(tt.vy))
			}
			if len(rec.events) != 1 {
				t.Fatalf("events = %v, want one WallBounce", rec.events)
			}
			if wb, ok := rec.events[0].(WallBounce); !ok || wb.Edge != tt.edge {
				t.Errorf("event = %#v, want WallBounce{%v}", rec.events[0], tt.edge)
			}
		})
	}
}

func TestPaddleHit(t *testing.T) {
	tests := []struct {
		name    string
		x, vx   float64
		side    Side
		wantX   float64
		wantDir float64
	}{
		{"left", 45, -300, Left, 24 + 12 + 8, 1},
		{"right", 755, 300, Right, 764 - 8, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(WithListener(rec))
			e.SetState(State{BallX: tt.x, BallY: 300, BallVX: tt.vx, LeftY: 300, RightY: 300, TargetY: 300})

			s := e.Advance(1.0/60, true)

			if math.Abs(s.BallX-tt.wantX) > eps {
				t.Errorf("ball x = %v, want flush at %v", s.BallX, tt.wantX)
			}
			if math.Signbit(s.BallVX) == math.Signbit(tt.vx) {
				t.Errorf("vx = %v, want sign flipped from %v", s.BallVX, tt.vx)
			}
			if math.Abs(math.Abs(s.BallVX)-300*1.05) > eps {
				t.Errorf("|vx| = %v, want %v", math.Abs(s.BallVX), 300*1.05)
			}
			if s.BallVY != 0 {
				t.Errorf("center hit added spin: vy = %v", s.BallVY)
			}
			hit, ok := rec.events[0].(PaddleHit)
			if !ok || hit.Side != tt.side {
				t.Errorf("event = %#v, want PaddleHit{%v}", rec.events[0], tt.side)
			}
		})
	}
}

func TestPaddleHitSpin(t *testing.T) {
	e := newTestEngine()
	e.SetState(State{BallX: 45, BallY: 340, BallVX: -300, LeftY: 300, RightY: 300, TargetY: 300})

	s := e.Advance(1.0/60, true)

	want := 40.0 / 55 * 120
	if math.Abs(s.BallVY-want) > eps {
		t.Errorf("vy = %v, want %v", s.BallVY, want)
	}
}

func TestPaddleIgnoresBallMovingAway(t *testing.T) {
	e := newTestEngine()
	e.SetState(State{BallX: 40, BallY: 300, BallVX: 300, LeftY: 300, RightY: 300, TargetY: 300})

	s := e.Advance(1.0/60, true)
	if s.BallVX != 300 {
		t.Errorf("vx = %v, want unchanged 300", s.BallVX)
	}
}

func TestPaddleMissOutsideSpan(t *testing.T) {
	e := newTestEngine()
	// Paddle covers 245..355; ball at 420 clears it
	e.SetState(State{BallX: 45, BallY: 420, BallVX: -300, LeftY: 300, RightY: 300, TargetY: 300})

	s := e.Advance(1.0/60, true)
	if s.BallVX != -300 {
		t.Errorf("vx = %v, want unchanged -300", s.BallVX)
	}
}

func TestMaxSpeedCap(t *testing.T) {
	p := DefaultParams()
	p.MaxSpeed = 310
	e := New(p, WithSeed(1))
	e.SetState(State{BallX: 45, BallY: 300, BallVX: -300, LeftY: 300, RightY: 300, TargetY: 300})

	s := e.Advance(1.0/60, true)
	if s.BallVX != 310 {
		t.Errorf("vx = %v, want capped 310", s.BallVX)
	}
}

func TestScoring(t *testing.T) {
	tests := []struct {
		name      string
		x, vx     float64
		wantLeft  int
		wantRight int
		scorer    Side
		serveDir  int
	}{
		{"past right edge", 845, 300, 1, 0, Left, -1},
		{"past left edge", -38, -300, 0, 1, Right, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			e := newTestEngine(WithListener(rec))
			e.SetState(State{BallX: tt.x, BallY: 300, BallVX: tt.vx, LeftY: 300, RightY: 300, TargetY: 300})

			s := e.Advance(1.0/60, true)

			if s.ScoreLeft != tt.wantLeft || s.ScoreRight != tt.wantRight {
				t.Errorf("score = %d:%d, want %d:%d", s.ScoreLeft, s.ScoreRight, tt.wantLeft, tt.wantRight)
			}
			if s.BallX != 400 || s.BallY != 300 {
				t.Errorf("ball = (%v, %v), want re-served at center", s.BallX, s.BallY)
			}
			if s.BallVX == 0 {
				t.Error("served ball has no horizontal velocity")
			}
			if (s.BallVX > 0) != (tt.serveDir > 0) {
				t.Errorf("serve vx = %v, want direction %d", s.BallVX, tt.serveDir)
			}

			if len(rec.events) != 2 {
				t.Fatalf("events = %#v, want Point then Serve", rec.events)
			}
			if pt, ok := rec.events[0].(Point); !ok || pt.Scorer != tt.scorer {
				t.Errorf("first event = %#v, want Point by %v", rec.events[0], tt.scorer)
			}
			if sv, ok := rec.events[1].(Serve); !ok || sv.Direction != tt.serveDir {
				t.Errorf("second event = %#v, want Serve{%d}", rec.events[1], tt.serveDir)
			}
		})
	}
}

func TestRallyCountedInPoint(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithListener(rec))
	e.SetState(State{BallX: 45, BallY: 300, BallVX: -300, LeftY: 300, RightY: 300, TargetY: 300})
	e.Advance(1.0/60, true) // left return

	s := e.State()
	s.BallX = 900
	s.BallVX = 300
	e.SetState(s)
	e.Advance(1.0/60, true)

	var pt Point
	for _, ev := range rec.events {
		if p, ok := ev.(Point); ok {
			pt = p
		}
	}
	if pt.Rally != 1 {
		t.Errorf("rally = %d, want 1", pt.Rally)
	}
}

func TestServeDistribution(t *testing.T) {
	e := newTestEngine()
	var left, right int
	for i := 0; i < 500; i++ {
		e.Serve(0)
		s := e.State()
		speed := math.Hypot(s.BallVX, s.BallVY)
		if speed < 260-eps || speed >= 340 {
			t.Fatalf("serve speed %v outside [260, 340)", speed)
		}
		angle := math.Atan2(s.BallVY, math.Abs(s.BallVX))
		if math.Abs(angle) > 0.3+eps {
			t.Fatalf("serve angle %v outside ±0.3", angle)
		}
		if s.BallVX > 0 {
			right++
		} else {
			left++
		}
	}
	if left < 150 || right < 150 {
		t.Errorf("serve directions skewed: left %d right %d", left, right)
	}
}

func TestServeExplicitDirection(t *testing.T) {
	e := newTestEngine()
	for i := 0; i < 50; i++ {
		e.Serve(1)
		if e.State().BallVX <= 0 {
			t.Fatalf("Serve(1) produced vx = %v", e.State().BallVX)
		}
		e.Serve(-7)
		if e.State().BallVX >= 0 {
			t.Fatalf("Serve(-7) produced vx = %v", e.State().BallVX)
		}
	}
}

func TestReset(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(WithListener(rec))
	e.SetState(State{ScoreLeft: 3, ScoreRight: 5, BallX: 100, BallY: 100, LeftY: 100, RightY: 400, TargetY: 150})

	e.Reset()
	s := e.State()

	if s.ScoreLeft != 0 || s.ScoreRight != 0 {
		t.Errorf("scores = %d:%d, want 0:0", s.ScoreLeft, s.ScoreRight)
	}
	if s.LeftY != 100 || s.RightY != 400 || s.TargetY != 150 {
		t.Errorf("paddles moved: left %v right %v target %v", s.LeftY, s.RightY, s.TargetY)
	}
	if s.BallX != 400 || s.BallY != 300 {
		t.Errorf("ball = (%v, %v), want center", s.BallX, s.BallY)
	}
	if _, ok := rec.events[0].(Reset); !ok {
		t.Errorf("first event = %#v, want Reset", rec.events[0])
	}
}

func TestUpdateTargetConverges(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity float64
		desired     float64
		want        float64
	}{
		{"damped", 0.3, 450, 450},
		{"snap", 1, 200, 200},
		{"clamped", 0.5, 1000, 545},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			p.Sensitivity = tt.sensitivity
			e := New(p, WithSeed(1))

			prevGap := math.Abs(e.State().TargetY - tt.want)
			for i := 0; i < 100; i++ {
				e.UpdateTarget(tt.desired)
				gap := math.Abs(e.State().TargetY - tt.want)
				if gap > prevGap+eps {
					t.Fatalf("step %d: gap grew from %v to %v", i, prevGap, gap)
				}
				prevGap = gap
			}
			if prevGap > 1e-6 {
				t.Errorf("target = %v, want %v", e.State().TargetY, tt.want)
			}
		})
	}
}

func TestNudge(t *testing.T) {
	e := newTestEngine()
	e.Nudge(-6)
	s := e.State()
	if s.LeftY != 294 || s.TargetY != 294 {
		t.Errorf("after nudge: left %v target %v, want 294", s.LeftY, s.TargetY)
	}

	e.Nudge(1000)
	s = e.State()
	if s.LeftY != 545 || s.TargetY != 545 {
		t.Errorf("after big nudge: left %v target %v, want clamped 545", s.LeftY, s.TargetY)
	}
}

func TestBallSpeed(t *testing.T) {
	tests := []struct {
		vx, vy, want float64
	}{
		{3, 4, 5},
		{-260, 0, 260},
		{0, 0, 0},
	}
	for _, tt := range tests {
		s := State{BallVX: tt.vx, BallVY: tt.vy}
		if got := s.BallSpeed(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("BallSpeed(%v, %v) = %v, want %v", tt.vx, tt.vy, got, tt.want)
		}
	}
}

func TestNudgeDropsPendingTarget(t *testing.T) {
	e := newTestEngine()
	e.SetState(State{BallX: 400, BallY: 300, LeftY: 300, RightY: 300, TargetY: 500, BallRadius: 8})

	e.Nudge(6)
	s := e.State()
	if s.LeftY != 306 || s.TargetY != 306 {
		t.Fatalf("after nudge: left %v target %v, want 306", s.LeftY, s.TargetY)
	}

	// The paddle holds where the keyboard left it
	s = e.Advance(1.0/60, true)
	if math.Abs(s.LeftY-306) > 1e-9 {
		t.Errorf("left after advance = %v, want 306", s.LeftY)
	}
}

func TestAdvanceBadDT(t *testing.T) {
	for _, dt := range []float64{-1, math.NaN(), math.Inf(1)} {
		e := newTestEngine()
		before := e.State()
		s := e.Advance(dt, true)
		if s.BallX != before.BallX || s.BallY != before.BallY {
			t.Errorf("dt=%v moved the ball to (%v, %v)", dt, s.BallX, s.BallY)
		}
	}
}

func TestPaddlesStayInRange(t *testing.T) {
	e := newTestEngine()
	e.SetState(State{BallX: 400, BallY: 2, BallVX: 100, BallVY: -50, LeftY: 300, RightY: 300, TargetY: 300})
	e.UpdateTarget(-1000)
	for i := 0; i < 600; i++ {
		s := e.Advance(1.0/60, true)
		for _, y := range []float64{s.LeftY, s.RightY, s.TargetY} {
			if y < 55 || y > 545 {
				t.Fatalf("tick %d: paddle value %v outside [55, 545]", i, y)
			}
		}
	}
}

type phaseLog struct {
	ticks  int
	phases []string
}

func (p *phaseLog) StartTick()              { p.ticks++ }
func (p *phaseLog) StartPhase(phase string) { p.phases = append(p.phases, phase) }
func (p *phaseLog) EndTick()                {}

func TestPhaseOrder(t *testing.T) {
	log := &phaseLog{}
	e := newTestEngine(WithPhaseTimer(log))

	e.Advance(1.0/60, false)
	if log.ticks != 0 {
		t.Errorf("paused advance started %d ticks", log.ticks)
	}

	e.Advance(1.0/60, true)
	if len(log.phases) != len(Phases) {
		t.Fatalf("phases = %v, want %v", log.phases, Phases)
	}
	for i := range Phases {
		if log.phases[i] != Phases[i] {
			t.Errorf("phase %d = %q, want %q", i, log.phases[i], Phases[i])
		}
	}
}
