package tui

import (
	"math"
	"testing"
)

func TestGridToCell(t *testing.T) {
	g := NewGrid(80, 32, 800, 600)

	tests := []struct {
		name     string
		fx, fy   float64
		col, row int
	}{
		{"top left", 0, 0, 0, 1},
		{"bottom right", 800, 600, 79, 30},
		{"center", 400, 300, 40, 16},
		{"outside clamps", -50, 900, 0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := g.ToCell(tt.fx, tt.fy)
			if col != tt.col || row != tt.row {
				t.Errorf("ToCell(%v, %v) = (%d, %d), want (%d, %d)", tt.fx, tt.fy, col, row, tt.col, tt.row)
			}
		})
	}
}

func TestGridRowToField(t *testing.T) {
	g := NewGrid(80, 32, 800, 600)

	tests := []struct {
		row  int
		want float64
	}{
		{1, 10},
		{30, 590},
		{0, 10},   // score row clamps to the first field row
		{99, 590}, // past the status row clamps to the last
	}
	for _, tt := range tests {
		if got := g.RowToField(tt.row); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RowToField(%d) = %v, want %v", tt.row, got, tt.want)
		}
	}

	for row := 1; row <= g.FieldRows(); row++ {
		if _, back := g.ToCell(0, g.RowToField(row)); back != row {
			t.Errorf("row %d maps back to %d", row, back)
		}
	}
}

func TestGridSpanRows(t *testing.T) {
	g := NewGrid(80, 32, 800, 600)
	first, last := g.SpanRows(245, 355)
	if first != 13 || last != 18 {
		t.Errorf("SpanRows(245, 355) = (%d, %d), want (13, 18)", first, last)
	}
}

func TestGridMinimumSize(t *testing.T) {
	g := NewGrid(0, 0, 800, 600)
	if g.Cols != 1 || g.FieldRows() != 1 {
		t.Errorf("tiny grid = %dx%d with %d field rows", g.Cols, g.Rows, g.FieldRows())
	}
	col, row := g.ToCell(400, 300)
	if col != 0 || row != 1 {
		t.Errorf("ToCell on tiny grid = (%d, %d), want (0, 1)", col, row)
	}
}
