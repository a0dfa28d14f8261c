package mines

import "testing"

func TestSquareSetContainsMatchesForEach(t *testing.T) {
	s := SquareSet{X: 5, Y: 5, Mask: TopLeft | Center | BottomRight}

	var got []struct{ x, y int }
	s.ForEach(func(x, y int) {
		got = append(got, struct{ x, y int }{x, y})
	})

	want := []struct{ x, y int }{{5, 5}, {6, 6}, {7, 7}}
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %d cells, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("cell %d = %+v, want %+v", i, got[i], w)
		}
		if !s.Contains(w.x, w.y) {
			t.Errorf("Contains(%d,%d) = false, want true", w.x, w.y)
		}
	}
	if s.Contains(5, 6) {
		t.Error("Contains(5,6) = true, want false (not in mask)")
	}
	if s.Count() != 3 {
		t.Errorf("Count() = %d, want 3", s.Count())
	}
}

func TestSquareSetTranslateRoundTrip(t *testing.T) {
	// s selects (2,2), (3,2) and (4,3). Only (2,2) lies inside the
	// window anchored at (0,0), so only that cell survives the trip.
	s := SquareSet{X: 2, Y: 2, Mask: TopLeft | Top | Right}
	t2 := s.Translate(0, 0)
	back := t2.Translate(2, 2)

	if want := TopLeft; back.Mask != want {
		t.Errorf("round-tripped mask = %09b, want %09b", back.Mask, want)
	}
}

func TestSquareSetTranslateOutOfRangeIsEmpty(t *testing.T) {
	s := SquareSet{X: 0, Y: 0, Mask: fullMask}
	if got := s.Translate(3, 0); !got.Empty() {
		t.Errorf("Translate by 3 columns = %v, want empty", got)
	}
	if got := s.Translate(0, 3); !got.Empty() {
		t.Errorf("Translate by 3 rows = %v, want empty", got)
	}
}

func TestSquareSetNormalizedPushesAnchor(t *testing.T) {
	// Mask selects only the bottom-right cell; normalizing should
	// walk the anchor down-and-right until that cell is the top-left
	// of a single-bit mask.
	s := SquareSet{X: 0, Y: 0, Mask: BottomRight}
	n := s.Normalized()

	if n.X != 2 || n.Y != 2 || n.Mask != TopLeft {
		t.Errorf("Normalized() = %+v, want {X:2 Y:2 Mask:%d}", n, TopLeft)
	}

	// The absolute cell selected must be unchanged.
	if !n.Contains(2, 2) || !s.Contains(2, 2) {
		t.Fatal("normalization must preserve the selected absolute cell")
	}
}

func TestSquareSetNormalizedEmptyIsZeroValue(t *testing.T) {
	s := SquareSet{X: 7, Y: 9, Mask: 0}
	if n := s.Normalized(); n != (SquareSet{}) {
		t.Errorf("Normalized() of empty set = %+v, want zero value", n)
	}
}

func TestSquareSetAndMinusOverlaps(t *testing.T) {
	a := SquareSet{X: 1, Y: 1, Mask: fullMask}
	b := SquareSet{X: 2, Y: 2, Mask: TopLeft} // selects absolute cell (2,2)

	if !a.Overlaps(b) {
		t.Fatal("a should overlap b: (2,2) is within a's 3x3 window")
	}

	inter := a.And(b)
	if inter.Count() != 1 || !inter.Contains(2, 2) {
		t.Errorf("a.And(b) = %+v, want a single cell at (2,2)", inter)
	}

	diff := a.Minus(b)
	if diff.Contains(2, 2) {
		t.Error("a.Minus(b) still contains (2,2)")
	}
	if diff.Count() != a.Count()-1 {
		t.Errorf("a.Minus(b).Count() = %d, want %d", diff.Count(), a.Count()-1)
	}
}

func TestSquareSetSubset(t *testing.T) {
	whole := SquareSet{X: 0, Y: 0, Mask: fullMask}
	corner := SquareSet{X: 0, Y: 0, Mask: TopLeft | Top}

	if !corner.Subset(whole) {
		t.Error("corner should be a subset of whole")
	}
	if whole.Subset(corner) {
		t.Error("whole should not be a subset of corner")
	}
}

func TestSquareSetDistantSetsNeverOverlap(t *testing.T) {
	a := SquareSet{X: 0, Y: 0, Mask: fullMask}
	b := SquareSet{X: 10, Y: 10, Mask: fullMask}

	if a.Overlaps(b) {
		t.Error("sets three or more cells apart must never overlap")
	}
}
