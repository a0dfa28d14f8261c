package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (new_mine_layout / mineopen context) and original_source's
// Generator class.

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand/v2"
)

// GameParams describes the board a Generator should produce.
type GameParams struct {
	Width, Height, MineCount int
	// Unique requires the generated board to be solvable by pure
	// deduction (with perturbation) from the opening click, never
	// requiring the player to guess. Disabling it produces a board
	// from a uniformly random mine placement with no such guarantee.
	Unique bool
}

// Validate checks params against the engine's structural constraints.
func (p GameParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("mines: width and height must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.MineCount < 0 {
		return fmt.Errorf("mines: mine count must not be negative, got %d", p.MineCount)
	}
	maxMines := p.Width*p.Height - 9
	if p.MineCount > maxMines {
		return fmt.Errorf("mines: too many mines (%d) for a %dx%d board; at most %d leaves the opening neighborhood clear", p.MineCount, p.Width, p.Height, maxMines)
	}
	return nil
}

// String renders params the way the teacher's seed strings do:
// width:height:mines:unique.
func (p GameParams) String() string {
	u := 0
	if p.Unique {
		u = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", p.Width, p.Height, p.MineCount, u)
}

// ParseGameParams parses a seed string produced by GameParams.String.
func ParseGameParams(seed string) (GameParams, error) {
	var p GameParams
	var u int
	n, err := fmt.Sscanf(seed, "%d:%d:%d:%d", &p.Width, &p.Height, &p.MineCount, &u)
	if n != 4 || err != nil {
		return GameParams{}, fmt.Errorf("mines: invalid game params seed %q: %w", seed, err)
	}
	p.Unique = u == 1
	return p, nil
}

// PerturbatorFactory builds a fresh Perturbator for a single
// generation attempt, anchored around the square the player is about
// to open.
type PerturbatorFactory func(startX, startY int) Perturbator

// Generator produces solvable minefields via repeated random
// placement plus solver-driven perturbation.
type Generator struct {
	rng            *mathrand.Rand
	seed           uint64
	newPerturbator PerturbatorFactory
}

// NewGenerator returns a Generator seeded deterministically from
// seed. A seed of 0 is not special-cased; callers that want
// non-deterministic generation should call NewGeneratorAuto instead.
func NewGenerator(seed uint64) *Generator {
	return &Generator{
		rng:            mathrand.New(mathrand.NewPCG(seed, seed)),
		seed:           seed,
		newPerturbator: func(x, y int) Perturbator { return NewDefaultPerturbator(x, y) },
	}
}

// NewGeneratorAuto returns a Generator seeded from the system entropy
// source.
func NewGeneratorAuto() *Generator {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Errorf("mines: failed to read entropy for seed: %w", err))
	}
	return NewGenerator(binary.LittleEndian.Uint64(buf[:]))
}

// WithPerturbatorFactory overrides the Perturbator used on every
// generation attempt, returning the same Generator for chaining.
func (g *Generator) WithPerturbatorFactory(f PerturbatorFactory) *Generator {
	g.newPerturbator = f
	return g
}

// Seed returns the seed this Generator was constructed with.
func (g *Generator) Seed() uint64 { return g.seed }

type gridOpener struct {
	mines *Grid[bool]
}

func (o gridOpener) Open(x, y int) int {
	assert(!o.mines.At(x, y), "Open: square unexpectedly a mine", nil)
	return countNeighborMines(o.mines, x, y)
}

// Generate produces a Width x Height minefield with MineCount mines,
// none within one square of (startX, startY). If params.Unique is
// false, the first random placement is returned without solving it.
// Otherwise it retries with fresh mine placements, without a limit,
// until one is solvable without guessing.
//
// Uniqueness is checked by running the Solver repeatedly against the
// candidate board: each retry either succeeds outright, needs strictly
// fewer perturbations than the previous retry (so progress is being
// made and the attempt continues against the same, perturbator-
// modified board), or fails to improve and the whole board is
// discarded in favor of a fresh random placement.
func (g *Generator) Generate(params GameParams, startX, startY int) (Grid[bool], error) {
	if err := params.Validate(); err != nil {
		return Grid[bool]{}, err
	}
	if !params.Unique {
		return g.randomLayout(params, startX, startY), nil
	}

	for attempt := 0; ; attempt++ {
		mines := g.randomLayout(params, startX, startY)
		perturbator := g.newPerturbator(startX, startY)
		perturbator.Reset(attempt)
		solver := NewSolver(perturbator)

		prev := NA
		solvable := false

		for {
			knowledge := NewGridFilled[Knowledge](params.Width, params.Height, Unknown)
			opener := gridOpener{mines: &mines}

			first := opener.Open(startX, startY)
			knowledge.Set(startX, startY, Knowledge(first))

			result := solver.Solve(knowledge, &mines, params.MineCount, opener, g.rng)

			if result < Success || (prev >= Success && result >= prev) {
				solvable = false
				break
			}
			if result == Success {
				solvable = true
				break
			}
			prev = result
		}

		if solvable {
			return mines, nil
		}
	}
}

// randomLayout places params.MineCount mines uniformly at random
// across the board, excluding the 3x3 neighborhood of (startX,
// startY).
func (g *Generator) randomLayout(params GameParams, startX, startY int) Grid[bool] {
	w, h := params.Width, params.Height
	mines := NewGrid[bool](w, h)

	candidates := make([]int, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if absDiff(y, startY) > 1 || absDiff(x, startX) > 1 {
				candidates = append(candidates, y*w+x)
			}
		}
	}

	k := len(candidates)
	for n := 0; n < params.MineCount; n++ {
		i := g.rng.IntN(k)
		mines.SetIndex(candidates[i], true)
		k--
		candidates[i] = candidates[k]
	}
	return mines
}
