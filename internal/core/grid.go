package core

import (
	"fmt"
	"strings"
)

const (
	aliveRune = '#'
	deadRune  = '.'
)

// Cell addresses a single grid position.
type Cell struct {
	Row, Col int
}

// Grid stores an N×N field of boolean cells in row-major order.
type Grid struct {
	n     int
	cells []bool
}

// NewGrid allocates an empty n×n grid.
func NewGrid(n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("new grid of size %d: %w", n, ErrInvalidDimension)
	}
	return &Grid{n: n, cells: make([]bool, n*n)}, nil
}

// NewRandomGrid allocates an n×n grid where every cell is independently alive
// with probability p.
func NewRandomGrid(n int, p float64, rng *RNG) (*Grid, error) {
	g, err := NewGrid(n)
	if err != nil {
		return nil, err
	}
	rng.FillChance(g.cells, p)
	return g, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.n }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.n && col >= 0 && col < g.n
}

// Index returns the linear slice index for (row, col). It does not check bounds.
func (g *Grid) Index(row, col int) int { return row*g.n + col }

// Alive is the unchecked read used by hot loops that already clipped their
// coordinates.
func (g *Grid) Alive(row, col int) bool { return g.cells[row*g.n+col] }

// Get returns the state of the cell at (row, col).
func (g *Grid) Get(row, col int) (bool, error) {
	if !g.InBounds(row, col) {
		return false, g.boundsErr(row, col)
	}
	return g.cells[g.Index(row, col)], nil
}

// Set assigns the state of the cell at (row, col).
func (g *Grid) Set(row, col int, alive bool) error {
	if !g.InBounds(row, col) {
		return g.boundsErr(row, col)
	}
	g.cells[g.Index(row, col)] = alive
	return nil
}

// Toggle flips the cell at (row, col) and returns its new state.
func (g *Grid) Toggle(row, col int) (bool, error) {
	if !g.InBounds(row, col) {
		return false, g.boundsErr(row, col)
	}
	idx := g.Index(row, col)
	g.cells[idx] = !g.cells[idx]
	return g.cells[idx], nil
}

func (g *Grid) boundsErr(row, col int) error {
	return fmt.Errorf("cell (%d,%d) on %dx%d grid: %w", row, col, g.n, g.n, ErrIndexOutOfBounds)
}

// IsEmpty reports whether every cell is dead.
func (g *Grid) IsEmpty() bool {
	for _, alive := range g.cells {
		if alive {
			return false
		}
	}
	return true
}

// Population counts the live cells.
func (g *Grid) Population() int {
	count := 0
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return count
}

// AliveCells lists live cells in row-major order.
func (g *Grid) AliveCells() []Cell {
	cells := make([]Cell, 0)
	for i, alive := range g.cells {
		if alive {
			cells = append(cells, Cell{Row: i / g.n, Col: i % g.n})
		}
	}
	return cells
}

// Cells exposes the backing slice in row-major order. Callers must not retain
// it across controller calls.
func (g *Grid) Cells() []bool { return g.cells }

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{n: g.n, cells: append([]bool(nil), g.cells...)}
}

// Equal reports whether both grids have the same size and cell states.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.n != other.n {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid one row per line, '#' for alive and '.' for dead.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow(g.n * (g.n + 1))
	for row := 0; row < g.n; row++ {
		for col := 0; col < g.n; col++ {
			if g.Alive(row, col) {
				b.WriteByte(aliveRune)
			} else {
				b.WriteByte(deadRune)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseGrid reads the format produced by String. Blank lines and surrounding
// whitespace are ignored; the remaining rows must form a square.
func ParseGrid(s string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	g, err := NewGrid(len(rows))
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		if len(line) != g.n {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(line), g.n, ErrInvalidDimension)
		}
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case aliveRune:
				g.cells[g.Index(r, c)] = true
			case deadRune:
			default:
				return nil, fmt.Errorf("row %d col %d: unexpected %q", r, c, line[c])
			}
		}
	}
	return g, nil
}
