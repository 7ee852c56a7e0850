package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListMoveDownNoWrapAtLastItem(t *testing.T) {
	l := NewList([]string{"a", "b", "c"})
	l.Sel = 2
	l.MoveDown(10)
	assert.Equal(t, 2, l.Sel)
}

func TestListGoToBottomSetsSelAndVisibleOffset(t *testing.T) {
	l := NewList(make([]int, 20))
	l.GoToBottom(5)
	assert.Equal(t, 19, l.Sel)
	assert.True(t, l.Offset <= l.Sel && l.Sel < l.Offset+5)
}

func TestListMoveDownThenUpIsIdentity(t *testing.T) {
	l := NewList([]string{"a", "b", "c", "d"})
	l.Sel = 1
	l.Offset = 0
	before := l
	l.MoveDown(3)
	l.MoveUp(3)
	assert.Equal(t, before.Sel, l.Sel)
	assert.Equal(t, before.Offset, l.Offset)
}

func TestListEmptySelectionIsUndefined(t *testing.T) {
	l := NewList([]string{})
	_, ok := l.Selected()
	assert.False(t, ok)
	assert.Equal(t, -1, l.Sel)
}

func TestListSetItemsClampsSelection(t *testing.T) {
	l := NewList([]string{"a", "b", "c"})
	l.Sel = 2
	l.SetItems([]string{"x"}, 10)
	assert.Equal(t, 0, l.Sel)
}
