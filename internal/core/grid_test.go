package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewGridRejectsNonPositiveSize(t *testing.T) {
	for _, n := range []int{0, -1, -25} {
		if _, err := NewGrid(n); !errors.Is(err, ErrInvalidDimension) {
			t.Fatalf("NewGrid(%d) err=%v, want ErrInvalidDimension", n, err)
		}
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g, err := NewGrid(25)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 25 || len(g.Cells()) != 625 {
		t.Fatalf("unexpected dimensions: size=%d cells=%d", g.Size(), len(g.Cells()))
	}
	if !g.IsEmpty() || g.Population() != 0 {
		t.Fatal("fresh grid must be empty")
	}
}

func TestGetSetBounds(t *testing.T) {
	g, _ := NewGrid(4)
	if err := g.Set(3, 3, true); err != nil {
		t.Fatal(err)
	}
	alive, err := g.Get(3, 3)
	if err != nil || !alive {
		t.Fatalf("Get(3,3) = %v, %v", alive, err)
	}
	if g.IsEmpty() {
		t.Fatal("grid with a live cell reported empty")
	}

	bad := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {10, 10}}
	for _, rc := range bad {
		if _, err := g.Get(rc[0], rc[1]); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Get(%d,%d) err=%v", rc[0], rc[1], err)
		}
		if err := g.Set(rc[0], rc[1], true); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Set(%d,%d) err=%v", rc[0], rc[1], err)
		}
		if _, err := g.Toggle(rc[0], rc[1]); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Toggle(%d,%d) err=%v", rc[0], rc[1], err)
		}
	}
	if g.Population() != 1 {
		t.Fatalf("out of range writes changed the grid: population %d", g.Population())
	}
}

func TestToggleFlipsOneCell(t *testing.T) {
	g, _ := NewGrid(5)
	before := g.Clone()
	state, err := g.Toggle(2, 3)
	if err != nil || !state {
		t.Fatalf("Toggle = %v, %v", state, err)
	}
	if diff := cmp.Diff([]Cell{{Row: 2, Col: 3}}, g.AliveCells()); diff != "" {
		t.Fatalf("alive cells mismatch (-want +got):\n%s", diff)
	}
	if _, err := g.Toggle(2, 3); err != nil {
		t.Fatal(err)
	}
	if !g.Equal(before) {
		t.Fatal("double toggle should restore the grid")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g, _ := NewGrid(3)
	_ = g.Set(1, 1, true)
	c := g.Clone()
	_ = c.Set(0, 0, true)
	if alive, _ := g.Get(0, 0); alive {
		t.Fatal("clone shares storage with original")
	}
	if !c.Equal(c.Clone()) {
		t.Fatal("clone not equal to itself")
	}
}

func TestEqualDifferentSizes(t *testing.T) {
	a, _ := NewGrid(3)
	b, _ := NewGrid(4)
	if a.Equal(b) {
		t.Fatal("grids of different size compared equal")
	}
}

func TestStringRoundTrip(t *testing.T) {
	src := `
.....
..#..
..#..
..#..
.....
`
	g, err := ParseGrid(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Cell{{1, 2}, {2, 2}, {3, 2}}
	if diff := cmp.Diff(want, g.AliveCells()); diff != "" {
		t.Fatalf("parsed cells mismatch (-want +got):\n%s", diff)
	}
	again, err := ParseGrid(g.String())
	if err != nil {
		t.Fatal(err)
	}
	if !again.Equal(g) {
		t.Fatalf("round trip changed grid:\n%s\nvs\n%s", g, again)
	}
}

func TestParseGridErrors(t *testing.T) {
	cases := map[string]string{
		"empty":   "",
		"ragged":  "..\n...\n",
		"badrune": "x.\n..\n",
	}
	for name, in := range cases {
		if _, err := ParseGrid(in); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := ParseGrid("..\n...\n"); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("ragged input err=%v", err)
	}
}

func TestNewRandomGridDeterministic(t *testing.T) {
	a, err := NewRandomGrid(25, 0.3, NewRNG(7))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewRandomGrid(25, 0.3, NewRNG(7))
	if !a.Equal(b) {
		t.Fatal("same seed produced different grids")
	}
	c, _ := NewRandomGrid(25, 0.3, NewRNG(8))
	if a.Equal(c) {
		t.Fatal("different seeds produced identical grids")
	}
	if _, err := NewRandomGrid(0, 0.3, NewRNG(1)); !errors.Is(err, ErrInvalidDimension) {
		t.Fatalf("NewRandomGrid(0) err=%v", err)
	}
}
