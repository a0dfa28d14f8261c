package mines

import (
	"math/rand/v2"
	"testing"
)

func countMines(g Grid[bool]) int {
	c := 0
	for i := 0; i < g.Len(); i++ {
		if g.AtIndex(i) {
			c++
		}
	}
	return c
}

func TestDefaultPerturbatorPreservesMineCount(t *testing.T) {
	const w, h = 8, 8
	r := rand.New(rand.NewPCG(7, 7))

	mines := NewGrid[bool](w, h)
	// set's window, (5,5)-(7,7): 3 mines, 6 clears.
	for _, p := range [][2]int{{5, 5}, {6, 6}, {7, 7}} {
		mines.Set(p[0], p[1], true)
	}
	// Outside candidates, rows y=0,1: 10 mines, clear of both the
	// start neighborhood and set's window.
	for x := 3; x <= 7; x++ {
		mines.Set(x, 0, true)
		mines.Set(x, 1, true)
	}
	knowledge := NewGridFilled[Knowledge](w, h, Unknown)

	before := countMines(mines)

	p := NewDefaultPerturbator(0, 0)
	set := SquareSet{X: 5, Y: 5, Mask: fullMask}
	changes := p.Perturb(&mines, knowledge, set, r)

	if len(changes) == 0 {
		t.Fatal("Perturb() returned no changes for a set with a genuine mine/clear mix")
	}
	if after := countMines(mines); after != before {
		t.Errorf("mine count changed from %d to %d; Perturb must preserve it", before, after)
	}
	if p.UseCount() != 1 {
		t.Errorf("UseCount() = %d, want 1", p.UseCount())
	}
}

func TestDefaultPerturbatorNeverTouchesStartNeighborhood(t *testing.T) {
	const w, h = 6, 6
	r := rand.New(rand.NewPCG(3, 3))

	mines := NewGrid[bool](w, h)
	// set's window, (3,3)-(5,5): 2 mines, 7 clears.
	mines.Set(3, 3, true)
	mines.Set(4, 4, true)
	// Outside candidates, rows y=0,1: 7 mines, clear of both the start
	// neighborhood and set's window.
	for _, p := range [][2]int{{2, 0}, {3, 0}, {4, 0}, {5, 0}, {2, 1}, {3, 1}, {4, 1}} {
		mines.Set(p[0], p[1], true)
	}
	knowledge := NewGridFilled[Knowledge](w, h, Unknown)

	p := NewDefaultPerturbator(0, 0)
	set := SquareSet{X: 3, Y: 3, Mask: fullMask}
	changes := p.Perturb(&mines, knowledge, set, r)

	if len(changes) == 0 {
		t.Fatal("Perturb() returned no changes for a set with a genuine mine/clear mix")
	}
	for _, c := range changes {
		if absDiff(c.X, 0) <= 1 && absDiff(c.Y, 0) <= 1 {
			t.Errorf("Perturb() touched (%d,%d), within one square of the start (0,0)", c.X, c.Y)
		}
	}
}

func TestDefaultPerturbatorRefusesBigPerturbUntilReset(t *testing.T) {
	mines := NewGrid[bool](5, 5)
	knowledge := NewGridFilled[Knowledge](5, 5, Unknown)
	r := rand.New(rand.NewPCG(9, 9))

	p := NewDefaultPerturbator(0, 0)
	if changes := p.Perturb(&mines, knowledge, SquareSet{}, r); changes != nil {
		t.Fatalf("Perturb() with empty set before Reset = %v, want nil", changes)
	}

	p.Reset(101)
	if !p.AllowBigPerturbs {
		t.Fatal("Reset(101) should enable big perturbs")
	}
}
