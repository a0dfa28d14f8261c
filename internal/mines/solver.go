package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (mineSolve) and original_source's Solver class.

import (
	"math/rand/v2"
	"strconv"
)

// SolveResult reports the outcome of a Solve call.
type SolveResult int

const (
	// NA is reserved for callers that skip solving entirely; Solve
	// itself never returns it.
	NA SolveResult = iota - 2
	// Stalled means deduction made no further progress and unknown
	// squares remain.
	Stalled
	// Success means every square was accounted for without needing
	// any perturbation.
	Success
	// values >0 mean Success after that many perturb calls.
)

func (r SolveResult) String() string {
	switch r {
	case NA:
		return "n/a"
	case Stalled:
		return "stalled"
	case Success:
		return "success"
	default:
		return strconv.Itoa(int(r)) + " perturbs"
	}
}

// Opener is the callback surface the solver uses to commit a
// deduction: reveal the true neighbor-mine count of a square the
// solver has proved safe to open. Implementations must never be asked
// to open a square that is actually a mine.
type Opener interface {
	Open(x, y int) int
}

// cellTodo is a FIFO queue of flat grid indices, backed by a
// preallocated linked-list array so the solver never allocates inside
// its hottest loop.
type cellTodo struct {
	next       []int
	head, tail int
}

func newCellTodo(n int) *cellTodo {
	return &cellTodo{next: make([]int, n), head: -1, tail: -1}
}

func (t *cellTodo) add(i int) {
	if t.tail >= 0 {
		t.next[t.tail] = i
	} else {
		t.head = i
	}
	t.tail = i
	t.next[i] = -1
}

func (t *cellTodo) pop() (i int, ok bool) {
	if t.head < 0 {
		return 0, false
	}
	i = t.head
	t.head = t.next[i]
	if t.head < 0 {
		t.tail = -1
	}
	return i, true
}

// markKnown reveals every covered square in square, marking the
// revealed squares known in knowledge and enqueuing them onto todo. If
// mine is true, the squares are instead marked as proven mines without
// being opened.
func markKnown(knowledge Grid[Knowledge], todo *cellTodo, opener Opener, square SquareSet, mine bool) {
	square.ForEach(func(x, y int) {
		i := knowledge.Index(x, y)
		if knowledge.AtIndex(i) != Unknown {
			return
		}
		if mine {
			knowledge.SetIndex(i, MarkedAsMine)
		} else {
			n := opener.Open(x, y)
			knowledge.SetIndex(i, Knowledge(n))
		}
		todo.add(i)
	})
}

// cell returns the single-cell SquareSet for (x,y), anchored at
// itself.
func cell(x, y int) SquareSet {
	return SquareSet{X: x, Y: y, Mask: TopLeft}
}

// Solver applies constraint propagation, augmented by a Perturbator
// when deduction stalls, to fully account for every square of a
// minefield without ever requiring a guess.
type Solver struct {
	Perturbator Perturbator
}

// NewSolver returns a Solver using p to mutate the grid whenever local
// and global deduction both stall. p may be nil, in which case the
// solver gives up as soon as it stalls.
func NewSolver(p Perturbator) *Solver {
	return &Solver{Perturbator: p}
}

// Solve attempts to fully determine every square of a width x height
// minefield containing totalMines mines, given an initial knowledge
// grid (Unknown for covered squares, 0-8 or MarkedAsMine for squares
// already known) and an Opener used to reveal squares proved safe.
// totalMines < 0 disables the global-deduction fallback, matching a
// caller that does not know the true mine count.
//
// knowledge is mutated in place. The Perturbator, if any, is asked to
// mutate mines in place whenever it has to change the board to make
// progress.
func (sv *Solver) Solve(
	knowledge Grid[Knowledge],
	mines *Grid[bool],
	totalMines int,
	opener Opener,
	r *rand.Rand,
) SolveResult {
	w, h := knowledge.Width, knowledge.Height
	ss := NewSetStore()
	nperturbs := 0

	todo := newCellTodo(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if knowledge.At(x, y) != Unknown {
				todo.add(knowledge.Index(x, y))
			}
		}
	}

	for {
		doneSomething := false

		for {
			i, ok := todo.pop()
			if !ok {
				break
			}
			x, y := i%w, i/w

			if k := knowledge.AtIndex(i); k.Opened() {
				square := SquareSet{X: x - 1, Y: y - 1}
				minesLeft := int(k)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						xx, yy := x+dx, y+dy
						if !knowledge.InBounds(xx, yy) {
							continue
						}
						switch knowledge.At(xx, yy) {
						case MarkedAsMine:
							minesLeft--
						case Unknown:
							square.Mask |= 1 << uint((dy+1)*3+(dx+1))
						}
					}
				}
				if square.Mask != 0 {
					ss.Add(square, minesLeft)
				}
			}

			probe := cell(x, y)
			wasMine := knowledge.At(x, y) == MarkedAsMine
			for _, s := range ss.Overlap(probe) {
				newSet := s.SquareSet.Minus(probe)
				newMines := s.mines
				if wasMine {
					newMines--
				}
				if !newSet.Empty() {
					ss.Add(newSet, newMines)
				}
				ss.Erase(s)
			}

			doneSomething = true
		}

		if s := ss.NextTodo(); s != nil {
			if s.mines == 0 || s.mines == s.Count() {
				markKnown(knowledge, todo, opener, s.SquareSet, s.mines != 0)
				continue
			}

			for _, s2 := range ss.Overlap(s.SquareSet) {
				sWing := s.SquareSet.Minus(s2.SquareSet)
				s2Wing := s2.SquareSet.Minus(s.SquareSet)
				swc, s2wc := sWing.Count(), s2Wing.Count()

				if swc == s.mines-s2.mines || s2wc == s2.mines-s.mines {
					markKnown(knowledge, todo, opener, sWing, swc == s.mines-s2.mines)
					markKnown(knowledge, todo, opener, s2Wing, s2wc == s2.mines-s.mines)
					continue
				}

				if swc == 0 && s2wc != 0 {
					ss.Add(s2Wing, s2.mines-s.mines)
				} else if s2wc == 0 && swc != 0 {
					ss.Add(sWing, s.mines-s2.mines)
				}
			}

			doneSomething = true
		} else if totalMines >= 0 {
			if sv.attemptGlobalDeduction(knowledge, todo, opener, ss, totalMines) {
				doneSomething = true
			} else if noneUnknown(knowledge) {
				break
			}
		}

		if doneSomething {
			continue
		}

		if sv.Perturbator == nil {
			break
		}

		nperturbs++
		var changes []Delta
		if c := ss.Len(); c == 0 {
			changes = sv.Perturbator.Perturb(mines, knowledge, SquareSet{}, r)
		} else {
			s := ss.At(r.IntN(c))
			changes = sv.Perturbator.Perturb(mines, knowledge, s.SquareSet, r)
		}

		if len(changes) == 0 {
			break
		}

		for _, c := range changes {
			i := knowledge.Index(c.X, c.Y)
			if c.Delta < 0 && knowledge.AtIndex(i) != Unknown {
				todo.add(i)
			}
			for _, s := range ss.Overlap(cell(c.X, c.Y)) {
				s.mines += c.Delta
				ss.AddTodo(s)
			}
		}
	}

	if !noneUnknown(knowledge) {
		return Stalled
	}
	return SolveResult(nperturbs)
}

// attemptGlobalDeduction searches all 2^n subsets (n capped at 10, as
// the teacher's solver does) of the currently stored constraints for a
// disjoint union whose remaining complement is forced either all-mine
// or all-clear. It returns true if it made progress.
func (sv *Solver) attemptGlobalDeduction(
	knowledge Grid[Knowledge],
	todo *cellTodo,
	opener Opener,
	ss *SetStore,
	totalMines int,
) bool {
	w, h := knowledge.Width, knowledge.Height

	squaresLeft, minesLeft := 0, totalMines
	for i := 0; i < w*h; i++ {
		switch knowledge.AtIndex(i) {
		case MarkedAsMine:
			minesLeft--
		case Unknown:
			squaresLeft++
		}
	}

	if squaresLeft == 0 {
		return false
	}

	if minesLeft == 0 || minesLeft == squaresLeft {
		mine := minesLeft != 0
		for i := 0; i < w*h; i++ {
			if knowledge.AtIndex(i) == Unknown {
				markKnown(knowledge, todo, opener, cell(i%w, i/w), mine)
			}
		}
		return true
	}

	const maxSets = 10
	nsets := ss.Len()
	if nsets > maxSets {
		return false
	}

	sets := make([]*setElement, nsets)
	for i := range sets {
		sets[i] = ss.At(i)
	}
	used := make([]bool, maxSets)

	cursor := 0
	for {
		if cursor < nsets {
			ok := true
			for i := 0; i < cursor; i++ {
				if used[i] && sets[cursor].SquareSet.Overlaps(sets[i].SquareSet) {
					ok = false
					break
				}
			}
			if ok {
				minesLeft -= sets[cursor].mines
				squaresLeft -= sets[cursor].Count()
			}
			used[cursor] = ok
			cursor++
			continue
		}

		if squaresLeft > 0 && (minesLeft == 0 || minesLeft == squaresLeft) {
			mine := minesLeft != 0
			for i := 0; i < w*h; i++ {
				if knowledge.AtIndex(i) != Unknown {
					continue
				}
				x, y := i%w, i/w
				outside := true
				for j := 0; j < nsets; j++ {
					if used[j] && sets[j].SquareSet.Contains(x, y) {
						outside = false
						break
					}
				}
				if outside {
					markKnown(knowledge, todo, opener, cell(x, y), mine)
				}
			}
			return true
		}

		cursor--
		for cursor >= 0 && !used[cursor] {
			cursor--
		}
		if cursor < 0 {
			return false
		}
		minesLeft += sets[cursor].mines
		squaresLeft += sets[cursor].Count()
		used[cursor] = false
		cursor++
	}
}

func noneUnknown(g Grid[Knowledge]) bool {
	for i := 0; i < g.Len(); i++ {
		if g.AtIndex(i) == Unknown {
			return false
		}
	}
	return true
}
