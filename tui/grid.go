// Package tui is a terminal front-end for the game. The field is scaled
// into the character grid and terminal mouse rows drive the paddle.
package tui

import "github.com/pthm-cable/handpong/systems"

// Grid maps the field onto a terminal of Cols x Rows cells. The first row
// holds the score and the last row the status line; the field fills the rows
// in between.
type Grid struct {
	Cols, Rows     int
	FieldW, FieldH float64
}

// NewGrid creates a grid for a terminal of the given size.
func NewGrid(cols, rows int, fieldW, fieldH float64) Grid {
	return Grid{Cols: max(1, cols), Rows: max(3, rows), FieldW: fieldW, FieldH: fieldH}
}

// FieldRows returns the number of rows showing the field.
func (g Grid) FieldRows() int {
	return g.Rows - 2
}

// ToCell returns the cell containing a field point.
func (g Grid) ToCell(fx, fy float64) (col, row int) {
	col = int(fx / g.FieldW * float64(g.Cols))
	row = int(fy / g.FieldH * float64(g.FieldRows()))
	col = min(max(col, 0), g.Cols-1)
	row = min(max(row, 0), g.FieldRows()-1)
	return col, row + 1
}

// RowToField returns the field height at the center of a terminal row.
// Rows outside the field clamp to its first or last row.
func (g Grid) RowToField(row int) float64 {
	r := min(max(row-1, 0), g.FieldRows()-1)
	return (float64(r) + 0.5) / float64(g.FieldRows()) * g.FieldH
}

// SpanRows returns the rows covered by the vertical field interval [y0, y1].
func (g Grid) SpanRows(y0, y1 float64) (first, last int) {
	_, first = g.ToCell(0, systems.Clamp(y0, 0, g.FieldH))
	_, last = g.ToCell(0, systems.Clamp(y1, 0, g.FieldH-1e-9))
	return first, last
}
