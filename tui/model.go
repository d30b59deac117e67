package tui

import (
	"fmt"

	"github.com/pthm-cable/handpong/sim"
)

// CellKind selects how a cell is styled.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellNet
	CellPaddle
	CellTarget
	CellBall
	CellText
)

// Cell is one character of a frame.
type Cell struct {
	Rune rune
	Kind CellKind
}

// Frame is a composed screen, row major.
type Frame struct {
	Cols, Rows int
	Cells      []Cell
}

// At returns the cell at (col, row).
func (f Frame) At(col, row int) Cell {
	return f.Cells[row*f.Cols+col]
}

func (f Frame) set(col, row int, r rune, k CellKind) {
	if col < 0 || col >= f.Cols || row < 0 || row >= f.Rows {
		return
	}
	f.Cells[row*f.Cols+col] = Cell{Rune: r, Kind: k}
}

func (f Frame) text(col, row int, s string) {
	for i, r := range []rune(s) {
		f.set(col+i, row, r, CellText)
	}
}

// Compose draws the state into a frame for the grid. Paddles are drawn
// after the target marker so they cover it when they line up.
func Compose(g Grid, p sim.Params, s sim.State, status string, showTarget bool) Frame {
	f := Frame{Cols: g.Cols, Rows: g.Rows, Cells: make([]Cell, g.Cols*g.Rows)}
	for i := range f.Cells {
		f.Cells[i] = Cell{Rune: ' '}
	}

	// Net
	netCol, _ := g.ToCell(p.Width/2, 0)
	for row := 1; row <= g.FieldRows(); row += 2 {
		f.set(netCol, row, '┊', CellNet)
	}

	half := p.HalfHeight()
	leftCol, _ := g.ToCell(p.LeftPaddleX()+p.PaddleWidth/2, 0)
	rightCol, _ := g.ToCell(p.RightPaddleX()+p.PaddleWidth/2, 0)

	if showTarget {
		_, row := g.ToCell(0, s.TargetY)
		f.set(leftCol+1, row, '<', CellTarget)
	}
	paddle := func(col int, y float64) {
		first, last := g.SpanRows(y-half, y+half)
		for row := first; row <= last; row++ {
			f.set(col, row, '█', CellPaddle)
		}
	}
	paddle(leftCol, s.LeftY)
	paddle(rightCol, s.RightY)

	if s.BallX >= 0 && s.BallX <= p.Width {
		col, row := g.ToCell(s.BallX, s.BallY)
		f.set(col, row, '●', CellBall)
	}

	score := fmt.Sprintf("%d : %d", s.ScoreLeft, s.ScoreRight)
	f.text((g.Cols-len([]rune(score)))/2, 0, score)
	f.text(1, g.Rows-1, status)

	return f
}
