package tree234_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minededuce/engine/internal/tree234"
)

type item struct {
	value int
}

func cmp(a, b *item) int {
	if a.value < b.value {
		return -1
	}
	if a.value > b.value {
		return 1
	}
	return 0
}

func TestAddAndCount(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	for i := 1; i < 10; i++ {
		tr.Add(&item{i})
	}
	assert.Equal(t, 9, tr.Count())
}

func TestAddRejectsDuplicate(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	first := &item{5}
	tr.Add(first)
	got := tr.Add(&item{5})
	assert.Same(t, first, got)
	assert.Equal(t, 1, tr.Count())
}

func TestIndexInAscendingOrder(t *testing.T) {
	var items []*item
	tr := tree234.NewTree234(cmp)
	for i := 1; i < 30; i++ {
		it := &item{i}
		items = append(items, it)
		tr.Add(it)
	}

	for i := range items {
		require.Equal(t, items[i], tr.Index(i))
	}
	assert.Nil(t, tr.Index(len(items)))
	assert.Nil(t, tr.Index(-1))
}

func TestIndexSurvivesShuffledInsertOrder(t *testing.T) {
	values := make([]int, 50)
	for i := range values {
		values[i] = i
	}
	r := rand.New(rand.NewPCG(1, 1))
	shuffled := slices.Clone(values)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	tr := tree234.NewTree234(cmp)
	for _, v := range shuffled {
		tr.Add(&item{v})
	}

	for i, want := range values {
		got := tr.Index(i)
		require.NotNil(t, got)
		assert.Equal(t, want, got.value)
	}
}

func TestFindRelPos(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	for _, v := range []int{2, 4, 6, 8, 10} {
		tr.Add(&item{v})
	}

	if el, _ := tr.FindRelPos(&item{6}, tree234.Eq); assert.NotNil(t, el) {
		assert.Equal(t, 6, el.value)
	}
	if el, _ := tr.FindRelPos(&item{5}, tree234.Eq); assert.Nil(t, el) {
		_ = el
	}
	if el, _ := tr.FindRelPos(&item{5}, tree234.Ge); assert.NotNil(t, el) {
		assert.Equal(t, 6, el.value)
	}
	if el, _ := tr.FindRelPos(&item{5}, tree234.Le); assert.NotNil(t, el) {
		assert.Equal(t, 4, el.value)
	}
}

func TestDeleteShrinksTreeAndPreservesOrder(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	var items []*item
	for i := 0; i < 40; i++ {
		it := &item{i}
		items = append(items, it)
		tr.Add(it)
	}

	for _, i := range []int{0, 5, 17, 39, 20} {
		removed := tr.Delete(items[i])
		require.Same(t, items[i], removed)
	}

	assert.Equal(t, 35, tr.Count())

	var seen []int
	for i := range tr.Count() {
		seen = append(seen, tr.Index(i).value)
	}
	assert.True(t, slices.IsSorted(seen))
}

func TestDeleteMissingElementIsNoop(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	tr.Add(&item{1})
	assert.Nil(t, tr.Delete(&item{99}))
	assert.Equal(t, 1, tr.Count())
}

func TestDeletePosOutOfRange(t *testing.T) {
	tr := tree234.NewTree234(cmp)
	tr.Add(&item{1})
	assert.Nil(t, tr.DeletePos(-1))
	assert.Nil(t, tr.DeletePos(1))
}
