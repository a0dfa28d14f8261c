package mines

// source: distilled from git.tartarus.org/simon/puzzles.git mines.c
// (struct set / setstore) and original_source's SetStore.

import (
	"fmt"

	"github.com/minededuce/engine/internal/tree234"
)

// setElement is a SquareSet plus the mine count the solver has proved
// for it, and the doubly-linked queue pointers used to track FIFO
// todo-list membership. It is never copied after insertion: the
// SetStore hands out pointers to the element stored in its ordered
// index.
type setElement struct {
	SquareSet
	mines      int
	todo       bool
	next, prev *setElement
}

func (e setElement) String() string {
	return fmt.Sprintf("%d.%d.%d=%d", e.Y, e.X, e.Mask, e.mines)
}

func setElementCmp(a, b *setElement) int {
	if a.Y != b.Y {
		if a.Y < b.Y {
			return -1
		}
		return 1
	}
	if a.X != b.X {
		if a.X < b.X {
			return -1
		}
		return 1
	}
	if a.Mask != b.Mask {
		if a.Mask < b.Mask {
			return -1
		}
		return 1
	}
	return 0
}

// SetStore is the solver's dual-indexed collection of SquareSet -> mine
// count constraints: an ordered tree234 keyed by normalized SquareSet
// (for Add/Overlap/Erase), plus a FIFO work queue of elements flagged
// todo.
type SetStore struct {
	tree               *tree234.Tree234[setElement]
	todoHead, todoTail *setElement
}

// NewSetStore returns an empty SetStore.
func NewSetStore() *SetStore {
	return &SetStore{tree: tree234.NewTree234(setElementCmp)}
}

// Len returns the number of distinct constraints currently stored.
func (ss *SetStore) Len() int {
	return ss.tree.Count()
}

// At returns the i'th constraint in tree order (0 <= i < Len()), used
// by the solver to pick a perturbation region uniformly at random and
// by its global-deduction step to enumerate all stored constraints.
func (ss *SetStore) At(i int) *setElement {
	return ss.tree.Index(i)
}

// AddTodo enqueues e at the tail of the work queue, unless it is
// already enqueued.
func (ss *SetStore) AddTodo(e *setElement) {
	if e.todo {
		return /* already on it */
	}
	e.prev = ss.todoTail
	if e.prev != nil {
		e.prev.next = e
	} else {
		ss.todoHead = e
	}
	ss.todoTail = e
	e.next = nil
	e.todo = true
}

// Add inserts a new constraint over square with the given mine count.
// If a normalized-equivalent constraint already exists, Add does
// nothing: two constraints over the same cell set always carry the
// same mine count, so the duplicate is pure noise.
func (ss *SetStore) Add(square SquareSet, mines int) {
	assert(square.Mask != 0, "SetStore.Add: mask cannot be empty", nil)

	norm := square.Normalized()
	e := &setElement{SquareSet: norm, mines: mines}

	if ss.tree.Add(e) != e {
		return // equivalent constraint already present
	}
	ss.AddTodo(e)
}

// Erase removes e from both the ordered index and, if present, the
// todo queue.
func (ss *SetStore) Erase(e *setElement) {
	next, prev := e.next, e.prev

	if prev != nil {
		prev.next = next
	} else if e == ss.todoHead {
		ss.todoHead = next
	}
	if next != nil {
		next.prev = prev
	} else if e == ss.todoTail {
		ss.todoTail = prev
	}
	e.todo = false

	ss.tree.Delete(e)
}

// Overlap returns every stored constraint whose absolute cell set
// intersects square. Callers may erase or re-enqueue the returned
// elements, but must not otherwise mutate the store while the slice is
// in use.
func (ss *SetStore) Overlap(square SquareSet) []*setElement {
	var ret []*setElement
	for xx := square.X - 2; xx <= square.X+2; xx++ {
		for yy := square.Y - 2; yy <= square.Y+2; yy++ {
			probe := &setElement{SquareSet: SquareSet{X: xx, Y: yy}}
			if el, pos := ss.tree.FindRelPos(probe, tree234.Ge); el != nil {
				for s := el; s != nil && s.X == xx && s.Y == yy; {
					if square.Overlaps(s.SquareSet) {
						ret = append(ret, s)
					}
					pos++
					s = ss.tree.Index(pos)
				}
			}
		}
	}
	return ret
}

// NextTodo pops and returns the head of the work queue, or nil if it
// is empty.
func (ss *SetStore) NextTodo() *setElement {
	ret := ss.todoHead
	if ret == nil {
		return nil
	}
	ss.todoHead = ret.next
	if ss.todoHead != nil {
		ss.todoHead.prev = nil
	} else {
		ss.todoTail = nil
	}
	ret.next, ret.prev = nil, nil
	ret.todo = false
	return ret
}
