package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (setMunge) and the SquareSet class described in original_source.

// Mask bit flags for the nine cells of a SquareSet's 3x3 window,
// packed row-major: bit i corresponds to offset (i%3, i/3).
const (
	TopLeft uint16 = 1 << iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

const fullMask uint16 = TopLeft | Top | TopRight | Left | Center | Right | BottomLeft | Bottom | BottomRight

const topRowMask = TopLeft | Top | TopRight
const leftColumnMask = TopLeft | Left | BottomLeft

// SquareSet is a set of at most 9 squares, all located within a 3x3
// window anchored at (X,Y). Bit i of Mask selects offset (i%3, i/3)
// from the anchor.
//
// Two SquareSets are equal iff they select the same absolute cells;
// the normalized form (see Normalized) is the canonical representative
// used as a map/tree key.
type SquareSet struct {
	X, Y int
	Mask uint16
}

// popcount returns the number of set bits in a 9-bit mask.
func popcount(mask uint16) int {
	mask = (mask & 0x5555) + ((mask & 0xAAAA) >> 1)
	mask = (mask & 0x3333) + ((mask & 0xCCCC) >> 2)
	mask = (mask & 0x0F0F) + ((mask & 0xF0F0) >> 4)
	mask = (mask & 0x00FF) + ((mask & 0xFF00) >> 8)
	return int(mask)
}

// Count returns the population count of the mask (0..9).
func (s SquareSet) Count() int {
	return popcount(s.Mask)
}

// Empty reports whether the set selects no cells.
func (s SquareSet) Empty() bool {
	return s.Mask == 0
}

// Contains reports whether absolute cell (x,y) belongs to s.
func (s SquareSet) Contains(x, y int) bool {
	dx, dy := x-s.X, y-s.Y
	if dx < 0 || dx > 2 || dy < 0 || dy > 2 {
		return false
	}
	return s.Mask&(1<<(dy*3+dx)) != 0
}

// ForEach visits each absolute cell belonging to s, in row-major order
// within the window.
func (s SquareSet) ForEach(fn func(x, y int)) {
	bit := uint16(1)
	for dy := 0; dy < 3; dy++ {
		for dx := 0; dx < 3; dx++ {
			if s.Mask&bit != 0 {
				fn(s.X+dx, s.Y+dy)
			}
			bit <<= 1
		}
	}
}

// maskAt re-expresses s's mask as if the set were anchored at (x,y)
// instead of (s.X,s.Y). Returns 0 if the two windows don't overlap
// (any translation of 3 or more cells along either axis loses the
// entire set).
func (s SquareSet) maskAt(x, y int) uint16 {
	mask := s.Mask
	if absDiff(s.X, x) >= 3 || absDiff(s.Y, y) >= 3 {
		return 0
	}
	for sx := s.X; sx > x; sx-- {
		mask &^= leftColumnMask << 2 // drop the column about to fall off the right
		mask <<= 1
	}
	for sx := s.X; sx < x; sx++ {
		mask &^= leftColumnMask
		mask >>= 1
	}
	for sy := s.Y; sy > y; sy-- {
		mask &^= topRowMask << 6
		mask <<= 3
	}
	for sy := s.Y; sy < y; sy++ {
		mask &^= topRowMask
		mask >>= 3
	}
	return mask
}

// Translate returns s re-anchored at (x,y): the cells of s that lie
// inside the 3x3 window at (x,y), expressed relative to that origin.
// Cells outside the new window are dropped, so the result is the empty
// set if the two windows do not overlap.
func (s SquareSet) Translate(x, y int) SquareSet {
	return SquareSet{X: x, Y: y, Mask: s.maskAt(x, y)}
}

// Normalized returns the canonical representative of s's cell set: the
// anchor is pushed down and right until the mask has at least one
// selected cell in the top row and one in the left column (or the
// mask is empty, in which case the anchor is irrelevant and reset to
// (0,0)).
func (s SquareSet) Normalized() SquareSet {
	if s.Empty() {
		return SquareSet{}
	}
	x, y, mask := s.X, s.Y, s.Mask
	for mask&leftColumnMask == 0 {
		mask >>= 1
		x++
	}
	for mask&topRowMask == 0 {
		mask >>= 3
		y++
	}
	return SquareSet{X: x, Y: y, Mask: mask}
}

// And returns the intersection of a and b, anchored at a's origin.
// The result may not be normalized; normalize before using it as a
// long-lived key.
func (a SquareSet) And(b SquareSet) SquareSet {
	return SquareSet{X: a.X, Y: a.Y, Mask: a.Mask & b.maskAt(a.X, a.Y)}
}

// Minus returns a with every cell of b removed, anchored at a's
// origin.
func (a SquareSet) Minus(b SquareSet) SquareSet {
	return SquareSet{X: a.X, Y: a.Y, Mask: a.Mask &^ b.maskAt(a.X, a.Y)}
}

// Overlaps reports whether a and b share at least one absolute cell.
func (a SquareSet) Overlaps(b SquareSet) bool {
	return a.Mask&b.maskAt(a.X, a.Y) != 0
}

// Subset reports whether every cell of a also belongs to b.
func (a SquareSet) Subset(b SquareSet) bool {
	return a.Minus(b).Mask == 0
}

func absDiff(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}
