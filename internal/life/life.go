// Package life implements Conway's Game of Life on a bounded grid: cells past
// the edge count as dead and nothing wraps.
package life

import (
	"fmt"

	"conway/internal/core"
)

// Rule applies B3/S23: a live cell survives with two or three live
// neighbors, a dead cell is born with exactly three.
func Rule(alive bool, neighbors int) bool {
	return neighbors == 3 || (alive && neighbors == 2)
}

// CountLiveNeighbors returns the number of live cells among the up to eight
// cells surrounding (row, col). The cell itself is never counted.
func CountLiveNeighbors(g *core.Grid, row, col int) int {
	n := g.Size()
	neighbors := 0
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= n {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			c := col + dc
			if c < 0 || c >= n {
				continue
			}
			if g.Alive(r, c) {
				neighbors++
			}
		}
	}
	return neighbors
}

// NextGeneration returns the successor of g in a freshly allocated grid.
func NextGeneration(g *core.Grid) *core.Grid {
	next, _ := core.NewGrid(g.Size())
	// Sizes match by construction.
	_ = StepInto(next, g)
	return next
}

// StepInto writes the successor of src into dst, reading only src. dst and
// src must be distinct grids of the same size.
func StepInto(dst, src *core.Grid) error {
	if dst == src {
		return fmt.Errorf("step into source grid: %w", core.ErrAliasedBuffers)
	}
	n := src.Size()
	if dst.Size() != n {
		return fmt.Errorf("step %dx%d into %dx%d: %w", n, n, dst.Size(), dst.Size(), core.ErrDimensionMismatch)
	}
	out := dst.Cells()
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			out[src.Index(row, col)] = Rule(src.Alive(row, col), CountLiveNeighbors(src, row, col))
		}
	}
	return nil
}
