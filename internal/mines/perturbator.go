package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (mineperturb) and original_source's Perturbator class.

import (
	"math/rand/v2"
	"slices"
)

type curiosity int

const (
	verySuspicious curiosity = iota + 1
	mildlyInteresting
	boring
)

// candidateCell is a square being considered as a perturbation target,
// ranked by curiosity and then by a random tiebreaker so that squares
// within the same curiosity class get shuffled.
type candidateCell struct {
	x, y     int
	priority curiosity
	random   int32
}

func candidateCellCmp(a, b *candidateCell) int {
	if a.priority != b.priority {
		if a.priority < b.priority {
			return -1
		}
		return 1
	}
	if a.random != b.random {
		if a.random < b.random {
			return -1
		}
		return 1
	}
	if a.y != b.y {
		if a.y < b.y {
			return -1
		}
		return 1
	}
	if a.x != b.x {
		return a.x - b.x
	}
	return 0
}

// Delta is one square changed by a Perturbator: Delta is +1 if the
// square became a mine, -1 if it was cleared. Adjacent opened squares'
// revealed counts change by the same amount.
type Delta struct {
	X, Y  int
	Delta int
}

// Perturbator is consulted by Solver.Solve whenever deduction stalls.
// It is given a region picked by the solver, one of its stored
// constraints chosen at random (set; the empty SquareSet means "no localized region — consider the entire unknown
// area") and must change the underlying mine grid while preserving
// the total mine count, returning the list of squares it touched. A
// nil or empty return means it could not help and the solver should
// give up.
type Perturbator interface {
	Perturb(mines *Grid[bool], knowledge Grid[Knowledge], set SquareSet, r *rand.Rand) []Delta
	// UseCount returns how many times Perturb has succeeded in
	// actually changing the grid since the last Reset or
	// ResetUseCount.
	UseCount() int
	ResetUseCount()
	// Reset is called by the Generator at the start of every fresh
	// mine-placement attempt, with the number of the attempt (0 on
	// the very first try of a given board).
	Reset(ntries int)
}

// DefaultPerturbator is the stock Perturbator: it prefers to touch
// squares near the boundary of known space, falls back to unknown
// squares further out, and as an absolute last resort touches already
// opened squares outside the starting neighborhood. It never touches
// the 3x3 neighborhood around (StartX, StartY).
//
// AllowBigPerturbs enables operating on the entire unexplored region
// at once (set.Empty()) rather than only a localized set; the teacher
// disables this for the first 100 attempts at a board because it tends
// to pack mines densely into corners, and only falls back to it once
// localized perturbation has failed repeatedly.
type DefaultPerturbator struct {
	StartX, StartY   int
	AllowBigPerturbs bool

	useCount int
}

// NewDefaultPerturbator returns a Perturbator that keeps clear the
// 3x3 neighborhood around the player's opening click at (startX,
// startY).
func NewDefaultPerturbator(startX, startY int) *DefaultPerturbator {
	return &DefaultPerturbator{StartX: startX, StartY: startY}
}

func (p *DefaultPerturbator) UseCount() int { return p.useCount }

func (p *DefaultPerturbator) ResetUseCount() { p.useCount = 0 }

// Reset clears the use count and enables big, whole-region
// perturbation when ntries is over 100, i.e. once more than 100
// earlier mine placements have failed.
func (p *DefaultPerturbator) Reset(ntries int) {
	p.useCount = 0
	p.AllowBigPerturbs = ntries > 100
}

// Perturb implements Perturbator.
func (p *DefaultPerturbator) Perturb(mines *Grid[bool], knowledge Grid[Knowledge], set SquareSet, r *rand.Rand) []Delta {
	width, height := mines.Width, mines.Height

	if set.Empty() && !p.AllowBigPerturbs {
		return nil
	}

	candidates := make([]*candidateCell, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if absDiff(y, p.StartY) <= 1 && absDiff(x, p.StartX) <= 1 {
				continue
			}
			if set.Empty() {
				if knowledge.At(x, y) == Unknown {
					continue
				}
			} else if set.Contains(x, y) {
				continue
			}

			c := &candidateCell{x: x, y: y}
			if knowledge.At(x, y) != Unknown {
				c.priority = boring
			} else {
				c.priority = mildlyInteresting
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						xx, yy := x+dx, y+dy
						if knowledge.InBounds(xx, yy) && knowledge.At(xx, yy) != Unknown {
							c.priority = verySuspicious
						}
					}
				}
			}
			c.random = r.Int32()
			candidates = append(candidates, c)
		}
	}
	slices.SortFunc(candidates, candidateCellCmp)

	nfull, nempty := 0, 0
	if !set.Empty() {
		set.ForEach(func(x, y int) {
			if mines.At(x, y) {
				nfull++
			} else {
				nempty++
			}
		})
	} else {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if knowledge.At(x, y) == Unknown {
					if mines.At(x, y) {
						nfull++
					} else {
						nempty++
					}
				}
			}
		}
	}

	var toFill, toEmpty []*candidateCell
	for _, c := range candidates {
		if mines.At(c.x, c.y) {
			toEmpty = append(toEmpty, c)
		} else {
			toFill = append(toFill, c)
		}
		if len(toFill) == nfull || len(toEmpty) == nempty {
			break
		}
	}

	var setlist []int
	if len(toFill) != nfull && len(toEmpty) != nempty {
		assert(len(toEmpty) != 0, "Perturb: toEmpty cannot be empty", nil)

		if !set.Empty() {
			set.ForEach(func(x, y int) {
				if !mines.At(x, y) {
					setlist = append(setlist, y*width+x)
				}
			})
		} else {
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					if knowledge.At(x, y) == Unknown && !mines.At(x, y) {
						setlist = append(setlist, y*width+x)
					}
				}
			}
		}

		assert(len(setlist) > len(toEmpty), "Perturb: setlist cannot be smaller than toEmpty", nil)

		for k := range toEmpty {
			index := k + r.IntN(len(setlist)-k)
			setlist[k], setlist[index] = setlist[index], setlist[k]
		}
	}

	var todos []*candidateCell
	var deltaTodo, deltaSet int
	if len(toFill) == nfull {
		todos, deltaTodo, deltaSet = toFill, +1, -1
		toEmpty = nil
	} else {
		todos, deltaTodo, deltaSet = toEmpty, -1, +1
		toFill = nil
	}

	changes := make([]Delta, 0, 2*len(todos))
	for _, t := range todos {
		changes = append(changes, Delta{X: t.x, Y: t.y, Delta: deltaTodo})
	}

	switch {
	case setlist != nil:
		for _, idx := range setlist[:len(toEmpty)] {
			changes = append(changes, Delta{X: idx % width, Y: idx / width, Delta: deltaSet})
		}
	case !set.Empty():
		set.ForEach(func(x, y int) {
			current := -1
			if mines.At(x, y) {
				current = +1
			}
			if deltaSet == -current {
				changes = append(changes, Delta{X: x, Y: y, Delta: deltaSet})
			}
		})
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if knowledge.At(x, y) != Unknown {
					continue
				}
				current := -1
				if mines.At(x, y) {
					current = +1
				}
				if deltaSet == -current {
					changes = append(changes, Delta{X: x, Y: y, Delta: deltaSet})
				}
			}
		}
	}

	assert(len(changes) == 2*len(todos), "Perturb: incomplete perturbation changes", nil)

	for _, c := range changes {
		assert((c.Delta < 0) == mines.At(c.X, c.Y), "Perturb: adding an existing mine or removing an absent one", nil)
		mines.Set(c.X, c.Y, c.Delta > 0)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				xx, yy := c.X+dx, c.Y+dy
				if !knowledge.InBounds(xx, yy) || knowledge.At(xx, yy) == Unknown {
					continue
				}
				if dx == 0 && dy == 0 {
					if c.Delta > 0 {
						knowledge.Set(xx, yy, MarkedAsMine)
					} else {
						knowledge.Set(xx, yy, Knowledge(countNeighborMines(mines, xx, yy)))
					}
				} else if knowledge.At(xx, yy) >= 0 {
					knowledge.Set(xx, yy, knowledge.At(xx, yy)+Knowledge(c.Delta))
				}
			}
		}
	}

	if len(changes) > 0 {
		p.useCount++
	}
	return changes
}

func countNeighborMines(mines *Grid[bool], x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if mines.InBounds(xx, yy) && mines.At(xx, yy) {
				n++
			}
		}
	}
	return n
}
