package viewmodel

// List is the content state for a panel showing an ordered, selectable,
// scrollable sequence of items (spec.md §4.4). The invariant
// offset <= sel < offset+visibleRows is maintained by every navigation
// method; Sel is -1 when the list is empty.
type List[T any] struct {
	Items  []T
	Sel    int
	Offset int
}

// NewList creates a List over items, selecting the first item if any exist.
func NewList[T any](items []T) List[T] {
	sel := -1
	if len(items) > 0 {
		sel = 0
	}
	return List[T]{Items: items, Sel: sel}
}

// SetItems replaces the item slice, clamping selection/offset to the new
// length (used after a targeted refresh, spec.md §4.5).
func (l *List[T]) SetItems(items []T, visibleRows int) {
	l.Items = items
	if len(items) == 0 {
		l.Sel = -1
		l.Offset = 0
		return
	}
	if l.Sel >= len(items) {
		l.Sel = len(items) - 1
	}
	if l.Sel < 0 {
		l.Sel = 0
	}
	l.clampOffset(visibleRows)
}

// Selected returns the selected item and whether a selection exists.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.Sel < 0 || l.Sel >= len(l.Items) {
		return zero, false
	}
	return l.Items[l.Sel], true
}

// MoveDown advances the selection by one. At the last item it is a no-op —
// selection never wraps (spec.md §8).
func (l *List[T]) MoveDown(visibleRows int) {
	if l.Sel < 0 || l.Sel >= len(l.Items)-1 {
		return
	}
	l.Sel++
	l.clampOffset(visibleRows)
}

// MoveUp retreats the selection by one, clamped at the first item.
func (l *List[T]) MoveUp(visibleRows int) {
	if l.Sel <= 0 {
		return
	}
	l.Sel--
	l.clampOffset(visibleRows)
}

// PageDown advances the selection by visibleRows, clamped to the last item.
func (l *List[T]) PageDown(visibleRows int) {
	if len(l.Items) == 0 {
		return
	}
	l.Sel += visibleRows
	if l.Sel > len(l.Items)-1 {
		l.Sel = len(l.Items) - 1
	}
	l.clampOffset(visibleRows)
}

// PageUp retreats the selection by visibleRows, clamped to the first item.
func (l *List[T]) PageUp(visibleRows int) {
	if len(l.Items) == 0 {
		return
	}
	l.Sel -= visibleRows
	if l.Sel < 0 {
		l.Sel = 0
	}
	l.clampOffset(visibleRows)
}

// GoToTop selects the first item.
func (l *List[T]) GoToTop() {
	if len(l.Items) == 0 {
		return
	}
	l.Sel = 0
	l.Offset = 0
}

// GoToBottom selects the last item and scrolls so it is visible.
func (l *List[T]) GoToBottom(visibleRows int) {
	if len(l.Items) == 0 {
		return
	}
	l.Sel = len(l.Items) - 1
	l.clampOffset(visibleRows)
}

// clampOffset restores offset <= sel < offset+visibleRows.
func (l *List[T]) clampOffset(visibleRows int) {
	if visibleRows <= 0 {
		return
	}
	if l.Sel < l.Offset {
		l.Offset = l.Sel
	}
	if l.Sel >= l.Offset+visibleRows {
		l.Offset = l.Sel - visibleRows + 1
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}
