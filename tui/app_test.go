package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/handpong/sim"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen, *sim.Session) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 32)
	t.Cleanup(screen.Fini)

	session := sim.NewSession(sim.New(sim.DefaultParams(), sim.WithSeed(1)))
	app := newApp(screen, session, Options{FPS: 30, MaxDT: 0.033, KeyboardStep: 6})
	return app, screen, session
}

func TestAppMouseSetsTarget(t *testing.T) {
	app, _, session := newTestApp(t)

	// Top field row is above the legal range and clamps to the paddle minimum
	app.handleEvent(tcell.NewEventMouse(10, 1, tcell.Button1, tcell.ModNone))
	if got := session.Snapshot().TargetY; got != 55 {
		t.Errorf("target = %v, want 55", got)
	}
	if !app.pointing {
		t.Error("pointing not set after a mouse event on the field")
	}
}

func TestAppMouseOutsideFieldIgnored(t *testing.T) {
	app, _, session := newTestApp(t)
	before := session.Snapshot().TargetY

	app.handleEvent(tcell.NewEventMouse(10, 0, tcell.Button1, tcell.ModNone))
	app.handleEvent(tcell.NewEventMouse(10, 31, tcell.Button1, tcell.ModNone))
	if got := session.Snapshot().TargetY; got != before {
		t.Errorf("target moved to %v from the score or status row", got)
	}
}

func TestAppResize(t *testing.T) {
	app, screen, _ := newTestApp(t)

	screen.SetSize(120, 40)
	app.handleEvent(tcell.NewEventResize(120, 40))
	if app.grid.Cols != 120 || app.grid.Rows != 40 {
		t.Errorf("grid = %dx%d, want 120x40", app.grid.Cols, app.grid.Rows)
	}
}

func TestAppDraw(t *testing.T) {
	app, screen, session := newTestApp(t)

	app.draw(session.Snapshot())
	r, _, _, _ := screen.GetContent(40, 16)
	if r != '●' {
		t.Errorf("ball cell = %q, want '●'", r)
	}
}
