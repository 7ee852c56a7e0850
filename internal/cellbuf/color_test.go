package cellbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorEqual(t *testing.T) {
	assert.True(t, RGB(1, 2, 3).Equal(RGB(1, 2, 3)))
	assert.False(t, RGB(1, 2, 3).Equal(RGB(1, 2, 4)))
	assert.True(t, Reset().Equal(Reset()))
	assert.False(t, Named(NamedRed).Equal(Palette(1)))
}

func TestStyleWeakerThan(t *testing.T) {
	bold := NewStyle().WithAttr(AttrBold)
	plain := NewStyle()
	assert.True(t, bold.isWeakerThan(plain))
	assert.False(t, plain.isWeakerThan(bold))
}
