package render

import (
	"image/color"
	"testing"
)

func TestFillCellsRGBA(t *testing.T) {
	cells := []bool{true, false}
	buf := make([]byte, 8)
	on := color.RGBA{R: 34, G: 211, B: 238, A: 255}
	off := color.RGBA{R: 30, G: 41, B: 59, A: 255}
	fillCellsRGBA(buf, cells, on, off)

	want := []byte{34, 211, 238, 255, 30, 41, 59, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		x, y, scale, n int
		row, col       int
		ok             bool
	}{
		{0, 0, 20, 25, 0, 0, true},
		{39, 20, 20, 25, 1, 1, true},
		{499, 499, 20, 25, 24, 24, true},
		{500, 0, 20, 25, 0, 0, false},
		{-1, 5, 20, 25, 0, 0, false},
		{5, 5, 0, 25, 0, 0, false},
	}
	for _, tc := range cases {
		row, col, ok := CellAt(tc.x, tc.y, tc.scale, tc.n)
		if ok != tc.ok || (ok && (row != tc.row || col != tc.col)) {
			t.Fatalf("CellAt(%d,%d,%d,%d) = (%d,%d,%v), want (%d,%d,%v)",
				tc.x, tc.y, tc.scale, tc.n, row, col, ok, tc.row, tc.col, tc.ok)
		}
	}
}
