package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveNextWraparound(t *testing.T) {
	for _, n := range []int{1, 2, 5, 10} {
		nav := New()
		nav.SetItemCount(n)

		// First move from no selection lands on the first item
		nav.MoveNext()
		assert.Equal(t, 0, nav.Index())

		// n more moves cycle through every item and back to the first
		for i := 0; i < n; i++ {
			nav.MoveNext()
		}
		assert.Equal(t, 0, nav.Index(), "size %d", n)

		nav.MoveNext()
		if n == 1 {
			assert.Equal(t, 0, nav.Index())
		} else {
			assert.Equal(t, 1, nav.Index())
		}
	}
}

func TestMovePreviousWraparound(t *testing.T) {
	nav := New()
	nav.SetItemCount(3)

	// From no selection, previous wraps to the last item
	nav.MovePrevious()
	assert.Equal(t, 2, nav.Index())

	nav.MovePrevious()
	assert.Equal(t, 1, nav.Index())
	nav.MovePrevious()
	assert.Equal(t, 0, nav.Index())

	// At the first item, previous wraps to the last again
	nav.MovePrevious()
	assert.Equal(t, 2, nav.Index())
}

func TestMovementNoopWithoutItems(t *testing.T) {
	nav := New()
	nav.SetItemCount(0)

	nav.MoveNext()
	assert.Equal(t, NoSelection, nav.Index())
	nav.MovePrevious()
	assert.Equal(t, NoSelection, nav.Index())
}

func TestItemCountChangeResetsSelection(t *testing.T) {
	nav := New()
	nav.SetItemCount(5)
	nav.MoveNext()
	nav.MoveNext()
	assert.Equal(t, 1, nav.Index())

	nav.SetItemCount(3)
	assert.Equal(t, NoSelection, nav.Index())

	// Same count leaves the selection alone
	nav.MoveNext()
	nav.SetItemCount(3)
	assert.Equal(t, 0, nav.Index())
}

func TestSelectCurrentRequiresHighlight(t *testing.T) {
	nav := New()
	selected := -99
	nav.SetSelectFunc(func(i int) { selected = i })

	// No items, no selection: callback never fires
	nav.SelectCurrent()
	assert.Equal(t, -99, selected)

	nav.SetItemCount(3)
	nav.SelectCurrent()
	assert.Equal(t, -99, selected)

	nav.MoveNext()
	nav.MoveNext()
	nav.SelectCurrent()
	assert.Equal(t, 1, selected)
}

func TestSelectCurrentOutOfBoundsIsNoop(t *testing.T) {
	nav := New()
	nav.SetItemCount(3)
	nav.MoveNext()

	called := false
	nav.SetSelectFunc(func(int) { called = true })

	// Shrink behind the navigator's back via Reset-free path: the index is
	// guarded against the current count at select time
	nav.SetItemCount(3) // unchanged, keeps index 0
	nav.index = 5
	nav.SelectCurrent()
	assert.False(t, called)
}

func TestEscapeFiresUnconditionally(t *testing.T) {
	nav := New()
	calls := 0
	nav.SetEscapeFunc(func() { calls++ })

	nav.Escape()
	nav.SetItemCount(4)
	nav.MoveNext()
	nav.Escape()

	assert.Equal(t, 2, calls)
}

func TestRevealFiresAfterIndexCommitted(t *testing.T) {
	nav := New()
	nav.SetItemCount(3)

	var observed []int
	nav.SetRevealFunc(func(i int) {
		// The navigator's index must already be mutated when reveal fires
		assert.Equal(t, nav.Index(), i)
		observed = append(observed, i)
	})

	nav.MoveNext()
	nav.MoveNext()
	nav.MovePrevious()

	assert.Equal(t, []int{0, 1, 0}, observed)
}

func TestResetClearsSelectionOnly(t *testing.T) {
	nav := New()
	nav.SetItemCount(4)
	nav.MoveNext()

	nav.Reset()
	assert.Equal(t, NoSelection, nav.Index())
	assert.Equal(t, 4, nav.ItemCount())
}
