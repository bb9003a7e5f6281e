// Package selection keeps a fuzzy-filtered view over a candidate list
// together with a cursor that always points at a visible row.
package selection

import "github.com/five82/cadence/internal/fuzzy"

// None is the cursor value when nothing is visible.
const None = -1

// List is a filtered, ranked view over items with a clamped cursor.
// The zero value is not usable; build one with New.
type List[T any] struct {
	keys     func(T) []string
	items    []T
	query    string
	order    []int
	selected int
}

// New returns an empty list whose items are matched on the strings keys
// returns.
func New[T any](keys func(T) []string) *List[T] {
	return &List[T]{keys: keys, selected: None}
}

// SetItems replaces the candidate list and recomputes the view.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.refresh()
}

// SetQuery replaces the filter query and recomputes the view.
func (l *List[T]) SetQuery(query string) {
	l.query = query
	l.refresh()
}

// Reset clears the query and moves the cursor back to the first row.
func (l *List[T]) Reset() {
	l.query = ""
	l.selected = None
	l.refresh()
}

// Move shifts the cursor by delta, clamped to the visible rows.
func (l *List[T]) Move(delta int) {
	if len(l.order) == 0 {
		return
	}
	cur := l.selected
	if cur == None {
		cur = 0
	}
	l.selected = clamp(cur+delta, 0, len(l.order)-1)
}

// Select places the cursor on visible row pos, clamped to the visible rows.
func (l *List[T]) Select(pos int) {
	if len(l.order) == 0 {
		return
	}
	l.selected = clamp(pos, 0, len(l.order)-1)
}

// Top moves the cursor to the first visible row.
func (l *List[T]) Top() { l.Select(0) }

// Bottom moves the cursor to the last visible row.
func (l *List[T]) Bottom() { l.Select(len(l.order) - 1) }

// SelectFunc moves the cursor to the first visible item match accepts and
// reports whether one was found.
func (l *List[T]) SelectFunc(match func(T) bool) bool {
	for pos, idx := range l.order {
		if match(l.items[idx]) {
			l.selected = pos
			return true
		}
	}
	return false
}

// Current returns the candidate index under the cursor.
func (l *List[T]) Current() (int, bool) {
	if l.selected == None {
		return 0, false
	}
	return l.order[l.selected], true
}

// CurrentItem returns the item under the cursor.
func (l *List[T]) CurrentItem() (T, bool) {
	idx, ok := l.Current()
	if !ok {
		var zero T
		return zero, false
	}
	return l.items[idx], true
}

// Query returns the active filter query.
func (l *List[T]) Query() string { return l.query }

// Selected returns the cursor position among visible rows, or None.
func (l *List[T]) Selected() int { return l.selected }

// Len returns the number of visible rows.
func (l *List[T]) Len() int { return len(l.order) }

// Total returns the number of candidates before filtering.
func (l *List[T]) Total() int { return len(l.items) }

// Order returns a copy of the visible candidate indices in display order.
func (l *List[T]) Order() []int {
	out := make([]int, len(l.order))
	copy(out, l.order)
	return out
}

// Visible returns the visible items in display order.
func (l *List[T]) Visible() []T {
	out := make([]T, len(l.order))
	for i, idx := range l.order {
		out[i] = l.items[idx]
	}
	return out
}

// Window returns the half-open range of visible rows to draw in a viewport
// of height rows so that the cursor stays on screen.
func (l *List[T]) Window(height int) (start, end int) {
	n := len(l.order)
	if height <= 0 || n == 0 {
		return 0, 0
	}
	if n <= height {
		return 0, n
	}
	cur := l.selected
	if cur == None {
		cur = 0
	}
	start = cur - height/2
	start = clamp(start, 0, n-height)
	return start, start + height
}

func (l *List[T]) refresh() {
	l.order = fuzzy.Rank(l.query, l.items, l.keys)
	l.reconcile()
}

// reconcile restores the cursor invariant after order changed: no rows means
// no cursor, a cursor past the end sticks to the last row, and a missing
// cursor lands on the first row.
func (l *List[T]) reconcile() {
	switch {
	case len(l.order) == 0:
		l.selected = None
	case l.selected >= len(l.order):
		l.selected = len(l.order) - 1
	case l.selected == None:
		l.selected = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
