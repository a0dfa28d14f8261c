package mines

import "testing"

func TestOpenCellHitsMine(t *testing.T) {
	mines := NewGrid[bool](3, 3)
	mines.Set(1, 1, true)
	g := &Game{
		Params:    GameParams{Width: 3, Height: 3},
		Mines:     mines,
		Knowledge: NewGridFilled[Knowledge](3, 3, Unknown),
	}

	if !g.OpenCell(1, 1) {
		t.Fatal("OpenCell() on a mine should return true")
	}
	if !g.Dead {
		t.Error("Dead should be set after opening a mine")
	}
	if g.Knowledge.At(1, 1) != MineHit {
		t.Errorf("knowledge(1,1) = %v, want MineHit", g.Knowledge.At(1, 1))
	}
}

// TestOpenCellFloodFillStopsAtMineWall opens a corner of a board split
// by a full column of mines. The flood reaches every zero square in
// the near half and the numbered squares bordering the mine column,
// then stops: the far half and the mine column itself stay
// covered, so the game does not end in an automatic win.
func TestOpenCellFloodFillStopsAtMineWall(t *testing.T) {
	const w, h = 5, 5
	mines := NewGrid[bool](w, h)
	for y := 0; y < h; y++ {
		mines.Set(2, y, true)
	}
	g := &Game{
		Params:    GameParams{Width: w, Height: h},
		Mines:     mines,
		Knowledge: NewGridFilled[Knowledge](w, h, Unknown),
	}

	if g.OpenCell(0, 0) {
		t.Fatal("OpenCell(0,0) should not hit a mine")
	}
	if g.Dead {
		t.Fatal("Dead should not be set")
	}
	if g.Won {
		t.Fatal("Won should not be set: the far half of the board is still covered")
	}

	for y := 0; y < h; y++ {
		for x := 0; x < 2; x++ {
			if !g.Knowledge.At(x, y).Opened() {
				t.Errorf("knowledge(%d,%d) = %v, want opened", x, y, g.Knowledge.At(x, y))
			}
		}
		if g.Knowledge.At(2, y) != Unknown {
			t.Errorf("knowledge(2,%d) = %v, want Unknown (mine column never opened)", y, g.Knowledge.At(2, y))
		}
		for x := 3; x < w; x++ {
			if g.Knowledge.At(x, y) != Unknown {
				t.Errorf("knowledge(%d,%d) = %v, want Unknown (unreached far half)", x, y, g.Knowledge.At(x, y))
			}
		}
	}
}

func TestFlagCellTogglesCoveredSquare(t *testing.T) {
	knowledge := NewGridFilled[Knowledge](2, 2, Unknown)
	g := &Game{Params: GameParams{Width: 2, Height: 2}, Knowledge: knowledge}

	g.FlagCell(0, 0)
	if g.Knowledge.At(0, 0) != MarkedAsMine {
		t.Fatalf("after first FlagCell, knowledge(0,0) = %v, want MarkedAsMine", g.Knowledge.At(0, 0))
	}
	g.FlagCell(0, 0)
	if g.Knowledge.At(0, 0) != Unknown {
		t.Fatalf("after second FlagCell, knowledge(0,0) = %v, want Unknown", g.Knowledge.At(0, 0))
	}
}

func TestFlagCellIgnoresOpenedSquare(t *testing.T) {
	knowledge := NewGridFilled[Knowledge](2, 2, Unknown)
	knowledge.Set(0, 0, 3)
	g := &Game{Params: GameParams{Width: 2, Height: 2}, Knowledge: knowledge}

	g.FlagCell(0, 0)
	if g.Knowledge.At(0, 0) != 3 {
		t.Errorf("FlagCell() on an opened square changed it to %v", g.Knowledge.At(0, 0))
	}
}

// TestChordCellOpensUnflaggedNeighbors builds a 3x3 board with a
// single mine at (0,0), already flagged, and an opened square at
// (1,1) whose count equals the flagged-neighbor count. Chording it
// must open every other neighbor without ever touching the mine.
func TestChordCellOpensUnflaggedNeighbors(t *testing.T) {
	mines := NewGrid[bool](3, 3)
	mines.Set(0, 0, true)
	knowledge := NewGridFilled[Knowledge](3, 3, Unknown)
	knowledge.Set(1, 1, 1)
	knowledge.Set(0, 0, MarkedAsMine)

	g := &Game{
		Params:    GameParams{Width: 3, Height: 3},
		Mines:     mines,
		Knowledge: knowledge,
	}

	g.ChordCell(1, 1)

	if g.Dead {
		t.Fatal("ChordCell() should never open the flagged mine")
	}
	if g.Knowledge.At(0, 0) != MarkedAsMine {
		t.Errorf("knowledge(0,0) = %v, want MarkedAsMine (untouched)", g.Knowledge.At(0, 0))
	}
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := 1+dx, 1+dy
			if x == 0 && y == 0 {
				continue
			}
			if !g.Knowledge.At(x, y).Opened() {
				t.Errorf("knowledge(%d,%d) = %v, want opened", x, y, g.Knowledge.At(x, y))
			}
		}
	}
	if !g.Won {
		t.Error("the only mine is flagged and every other square is open: Won should be set")
	}
}

func TestForfeitRevealsTerminalStates(t *testing.T) {
	const w, h = 3, 3
	mines := NewGrid[bool](w, h)
	mines.Set(0, 0, true)
	mines.Set(2, 2, true)

	knowledge := NewGridFilled[Knowledge](w, h, Unknown)
	knowledge.Set(0, 0, MarkedAsMine) // correctly flagged mine
	knowledge.Set(1, 0, MarkedAsMine) // incorrectly flagged, not a mine
	knowledge.Set(0, 1, Question)
	knowledge.Set(1, 1, 5) // already opened; must pass through unchanged
	// (2,0), (2,1), (0,2), (1,2) stay Unknown; (2,2) is the unflagged mine.

	g := &Game{
		Params:    GameParams{Width: w, Height: h},
		Mines:     mines,
		Knowledge: knowledge,
	}
	g.Forfeit()

	if !g.Dead {
		t.Fatal("Forfeit() should set Dead")
	}

	want := map[[2]int]Knowledge{
		{0, 0}: MineRevealed,
		{1, 0}: MineIncorrect,
		{2, 0}: 0,
		{0, 1}: 1,
		{1, 1}: 5,
		{2, 1}: 1,
		{0, 2}: 0,
		{1, 2}: 1,
		{2, 2}: UnflaggedMine,
	}
	for p, w := range want {
		if got := g.Knowledge.At(p[0], p[1]); got != w {
			t.Errorf("knowledge(%d,%d) = %v, want %v", p[0], p[1], got, w)
		}
	}
}
