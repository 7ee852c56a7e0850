package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutPanelsNonOverlappingAndBounded(t *testing.T) {
	sizes := [][2]int{{80, 24}, {81, 25}, {120, 40}, {200, 60}, {81, 24}}
	for _, sz := range sizes {
		w, h := sz[0], sz[1]
		l := Compute(w, h)

		rects := []struct{ X, Y, Width, Height int }{
			{l.Status.X, l.Status.Y, l.Status.Width, l.Status.Height},
			{l.Branches.X, l.Branches.Y, l.Branches.Width, l.Branches.Height},
			{l.Commits.X, l.Commits.Y, l.Commits.Width, l.Commits.Height},
			{l.Main.X, l.Main.Y, l.Main.Width, l.Main.Height},
		}

		for i := range rects {
			for j := range rects {
				if i == j {
					continue
				}
				a, b := rects[i], rects[j]
				overlap := a.X < b.X+b.Width && b.X < a.X+a.Width &&
					a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
				assert.False(t, overlap, "rects %d,%d overlap at size %dx%d", i, j, w, h)
			}
			r := rects[i]
			assert.GreaterOrEqual(t, r.Y, 1)
			assert.LessOrEqual(t, r.Y+r.Height, h-1)
			assert.LessOrEqual(t, r.X+r.Width, w)
		}

		// Left column height should collectively cover the content rows.
		leftCovered := l.Status.Height + l.Branches.Height + l.Commits.Height
		assert.Equal(t, h-2, leftCovered)
	}
}

func TestLayoutLeftColumnCapAt40(t *testing.T) {
	l := Compute(200, 50)
	assert.Equal(t, 40, l.Status.Width)
}
