package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/handpong/input"
	"github.com/pthm-cable/handpong/sim"
)

const legend = "[space] pause  [r] reset  [up/down] move  [q] quit"

var styles = map[CellKind]tcell.Style{
	CellEmpty:  tcell.StyleDefault,
	CellNet:    tcell.StyleDefault.Foreground(tcell.ColorGray),
	CellPaddle: tcell.StyleDefault.Foreground(tcell.ColorWhite),
	CellTarget: tcell.StyleDefault.Foreground(tcell.ColorSteelBlue),
	CellBall:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	CellText:   tcell.StyleDefault.Foreground(tcell.ColorSilver),
}

// Options configures the terminal app.
type Options struct {
	FPS          int
	MaxDT        float64 // Frame delta cap in seconds
	KeyboardStep float64 // Field units per arrow key press
}

// App runs the game in a terminal. The mouse is the paddle pointer and is
// always present, so the band is not applied.
type App struct {
	screen  tcell.Screen
	session *sim.Session
	params  sim.Params
	opts    Options

	grid     Grid
	running  bool
	pointing bool
}

// NewApp initializes the terminal screen.
func NewApp(session *sim.Session, opts Options) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return newApp(screen, session, opts), nil
}

// newApp wraps an initialized screen.
func newApp(screen tcell.Screen, session *sim.Session, opts Options) *App {
	screen.EnableMouse()
	screen.HideCursor()

	if opts.FPS < 1 {
		opts.FPS = 30
	}

	a := &App{
		screen:  screen,
		session: session,
		params:  session.Params(),
		opts:    opts,
		running: true,
	}
	a.resize()
	return a
}

// Close restores the terminal.
func (a *App) Close() {
	a.screen.Fini()
}

// Run plays until ctx is done or the player quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.opts.FPS))
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := a.handleEvent(ev); quit {
				return nil
			}
		case now := <-ticker.C:
			dt := min(a.opts.MaxDT, now.Sub(last).Seconds())
			last = now
			s := a.session.Advance(dt, a.running)
			a.draw(s)
		}
	}
}

// handleEvent applies one terminal event and reports whether to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			a.session.Nudge(-a.opts.KeyboardStep)
		case tcell.KeyDown:
			a.session.Nudge(a.opts.KeyboardStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				a.running = !a.running
			case 'r':
				a.session.Reset()
				slog.Info("game reset")
			}
		}
	case *tcell.EventMouse:
		_, row := ev.Position()
		if row > 0 && row <= a.grid.FieldRows() {
			a.pointing = true
			a.session.UpdateTarget(a.grid.RowToField(row))
		}
	}
	return false
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	a.grid = NewGrid(cols, rows, a.params.Width, a.params.Height)
}

func (a *App) draw(s sim.State) {
	status := input.StatusLine(a.running, true, false)
	f := Compose(a.grid, a.params, s, status+"   "+legend, a.pointing)

	a.screen.Clear()
	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			c := f.At(col, row)
			if c.Kind == CellEmpty {
				continue
			}
			a.screen.SetContent(col, row, c.Rune, nil, styles[c.Kind])
		}
	}
	a.screen.Show()
}
