package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (GameState) and original_source's Game class.

// Game is a playable minesweeper board: the true mine layout plus the
// player's current knowledge of it.
type Game struct {
	Params    GameParams
	Mines     Grid[bool]
	Knowledge Grid[Knowledge]
	Dead, Won bool
}

// NewGame generates a fresh solvable board for params and opens the
// square at (x,y), which is guaranteed never to be a mine.
func NewGame(gen *Generator, params GameParams, x, y int) (*Game, error) {
	mines, err := gen.Generate(params, x, y)
	if err != nil {
		return nil, err
	}

	g := &Game{
		Params:    params,
		Mines:     mines,
		Knowledge: NewGridFilled[Knowledge](params.Width, params.Height, Unknown),
	}
	if g.OpenCell(x, y) {
		return nil, AssertionError{"NewGame: mine in starting cell"}
	}
	return g, nil
}

// OpenCell reveals (x,y) and flood-fills outward through every
// zero-neighbor-count square reached in the process. It returns true
// if the revealed square was a mine, in which case Game.Dead is now
// set.
func (g *Game) OpenCell(x, y int) bool {
	w, h := g.Params.Width, g.Params.Height
	i := g.Knowledge.Index(x, y)

	if g.Mines.AtIndex(i) {
		g.Dead = true
		g.Knowledge.SetIndex(i, MineHit)
		return true
	}

	g.Knowledge.SetIndex(i, Todo)

	for {
		doneSomething := false
		for yy := 0; yy < h; yy++ {
			for xx := 0; xx < w; xx++ {
				if g.Knowledge.At(xx, yy) != Todo {
					continue
				}
				n := countNeighborMines(&g.Mines, xx, yy)
				g.Knowledge.Set(xx, yy, Knowledge(n))
				if n == 0 {
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							xxx, yyy := xx+dx, yy+dy
							if g.Knowledge.InBounds(xxx, yyy) && g.Knowledge.At(xxx, yyy) == Unknown {
								g.Knowledge.Set(xxx, yyy, Todo)
							}
						}
					}
				}
				doneSomething = true
			}
		}
		if !doneSomething {
			break
		}
	}

	if g.Dead {
		return false
	}

	nmines, ncovered := 0, 0
	for i := 0; i < w*h; i++ {
		if g.Knowledge.AtIndex(i) < 0 {
			ncovered++
		}
		if g.Mines.AtIndex(i) {
			nmines++
		}
	}
	if ncovered == nmines {
		for i := 0; i < w*h; i++ {
			if g.Knowledge.AtIndex(i) == Unknown {
				g.Knowledge.SetIndex(i, UnflaggedMine)
			}
		}
		g.Won = true
	}
	return false
}

// FlagCell toggles the mine marker on a covered square. It has no
// effect on an opened square.
func (g *Game) FlagCell(x, y int) {
	switch g.Knowledge.At(x, y) {
	case Unknown:
		g.Knowledge.Set(x, y, MarkedAsMine)
	case MarkedAsMine:
		g.Knowledge.Set(x, y, Unknown)
	}
}

// ChordCell opens every covered, unflagged neighbor of an opened
// square at (x,y) when the number of flagged neighbors equals the
// square's own revealed count.
func (g *Game) ChordCell(x, y int) {
	k := g.Knowledge.At(x, y)
	if !k.Opened() {
		return
	}
	count := int(k)

	var toOpen [][2]int
	flagged := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			xx, yy := x+dx, y+dy
			if !g.Knowledge.InBounds(xx, yy) {
				continue
			}
			switch g.Knowledge.At(xx, yy) {
			case MarkedAsMine:
				flagged++
			case Unknown:
				toOpen = append(toOpen, [2]int{xx, yy})
			}
		}
	}

	if flagged != count {
		return
	}
	for _, p := range toOpen {
		if g.OpenCell(p[0], p[1]) || g.Won {
			return
		}
	}
}

// Forfeit ends the game as a loss and reveals the whole board.
func (g *Game) Forfeit() {
	if !g.Dead && !g.Won {
		g.Dead = true
	}
	g.reveal()
}

// reveal fills in the terminal display states (UnflaggedMine,
// MineIncorrect, MineRevealed) across every still-covered square, for
// display once the game has ended.
func (g *Game) reveal() {
	w, h := g.Params.Width, g.Params.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch g.Knowledge.At(x, y) {
			case MarkedAsMine:
				if g.Mines.At(x, y) {
					g.Knowledge.Set(x, y, MineRevealed)
				} else {
					g.Knowledge.Set(x, y, MineIncorrect)
				}
			case Unknown, Question:
				if g.Mines.At(x, y) {
					g.Knowledge.Set(x, y, UnflaggedMine)
				} else {
					g.Knowledge.Set(x, y, Knowledge(countNeighborMines(&g.Mines, x, y)))
				}
			}
		}
	}
}
