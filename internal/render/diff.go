package render

import "github.com/gitpilot/gitpilot/internal/cellbuf"

// Op is a single cell that differs between the previous and next frame.
type Op struct {
	X, Y int
	Cell cellbuf.Cell
}

// Diff scans prev and next in row-major order and returns the minimal set of
// cells that differ (spec.md §4.2, §8 "no over-redraw" property). Dimension
// mismatches are handled by the caller via DoubleBuffer.Resize, which
// sentinel-fills the back buffer so every cell in next shows up here.
func Diff(prev, next *cellbuf.Buffer) []Op {
	var ops []Op
	w, h := next.Width(), next.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nc := next.Get(x, y)
			if !prev.Get(x, y).Equal(nc) {
				ops = append(ops, Op{X: x, Y: y, Cell: nc})
			}
		}
	}
	return ops
}
