package navigator

// NoSelection is the index value meaning nothing is highlighted
const NoSelection = -1

// Navigator maintains a selection cursor over an externally-supplied,
// possibly-changing ordered item list. The index is always within
// [-1, itemCount-1]; -1 means no selection.
type Navigator struct {
	index     int
	itemCount int

	selectFn func(index int) // invoked by SelectCurrent when an item is highlighted
	escapeFn func()          // invoked unconditionally by Escape
	revealFn func(index int) // invoked after any index change to scroll the item into view
}

// New creates a navigator with no items and no selection
func New() *Navigator {
	return &Navigator{index: NoSelection}
}

// SetSelectFunc sets the callback invoked when the current item is selected
func (n *Navigator) SetSelectFunc(fn func(index int)) {
	n.selectFn = fn
}

// SetEscapeFunc sets the callback invoked on Escape
func (n *Navigator) SetEscapeFunc(fn func()) {
	n.escapeFn = fn
}

// SetRevealFunc sets the callback invoked after the index changes so the
// presentation layer can scroll the item into view
func (n *Navigator) SetRevealFunc(fn func(index int)) {
	n.revealFn = fn
}

// Index returns the current selection index, -1 when nothing is selected
func (n *Navigator) Index() int {
	return n.index
}

// ItemCount returns the current number of navigable items
func (n *Navigator) ItemCount() int {
	return n.itemCount
}

// SetItemCount updates the navigable item count. Any count change resets
// the selection, so a fresh result set never keeps a stale highlight.
func (n *Navigator) SetItemCount(count int) {
	if count < 0 {
		count = 0
	}
	if count == n.itemCount {
		return
	}
	n.itemCount = count
	n.index = NoSelection
}

// MoveNext advances the selection, wrapping from the last item to the
// first. From no selection it lands on the first item. No-op without items.
func (n *Navigator) MoveNext() {
	if n.itemCount == 0 {
		return
	}
	if n.index == NoSelection || n.index >= n.itemCount-1 {
		n.setIndex(0)
		return
	}
	n.setIndex(n.index + 1)
}

// MovePrevious retreats the selection, wrapping from the first item (or no
// selection) to the last. No-op without items.
func (n *Navigator) MovePrevious() {
	if n.itemCount == 0 {
		return
	}
	if n.index <= 0 {
		n.setIndex(n.itemCount - 1)
		return
	}
	n.setIndex(n.index - 1)
}

// SelectCurrent fires the select callback for the highlighted item. Enter
// with nothing highlighted is a no-op, never a navigation.
func (n *Navigator) SelectCurrent() {
	if n.index == NoSelection || n.index >= n.itemCount {
		return
	}
	if n.selectFn != nil {
		n.selectFn(n.index)
	}
}

// Escape fires the escape callback; the owner decides whether it means
// "clear query" or "close".
func (n *Navigator) Escape() {
	if n.escapeFn != nil {
		n.escapeFn()
	}
}

// Reset clears the selection without touching the item count
func (n *Navigator) Reset() {
	n.index = NoSelection
}

// setIndex commits the new index, then signals reveal. Ordering matters:
// the reveal callback must observe the already-mutated index.
func (n *Navigator) setIndex(index int) {
	n.index = index
	if n.revealFn != nil {
		n.revealFn(index)
	}
}
