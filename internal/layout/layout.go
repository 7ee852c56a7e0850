// Package layout computes panel rects from a terminal size per the fixed
// policy of spec.md §4.4.
package layout

import "github.com/gitpilot/gitpilot/internal/cellbuf"

// Layout holds the computed geometry for one frame.
type Layout struct {
	HeaderRow int
	FooterRow int

	Status   cellbuf.Rect
	Branches cellbuf.Rect
	Commits  cellbuf.Rect
	Main     cellbuf.Rect
}

// Compute derives panel rects from a terminal width/height. Callers must
// already have rejected sizes below the 80x24 minimum surface (spec.md §6);
// Compute does not itself enforce the floor.
//
// Row 0 is the header, the last row is the footer. The remaining rows split
// vertically: the left column is min(floor(W*0.30), 40) columns wide; the
// right column takes the remainder minus one column for the separator. The
// left column splits into three equal (floor) height bands for Status,
// Branches and Commits, with Commits absorbing the remainder row. Main
// takes the full right column (spec.md §4.4).
func Compute(w, h int) Layout {
	headerRow := 0
	footerRow := h - 1

	contentTop := 1
	contentHeight := footerRow - contentTop
	if contentHeight < 0 {
		contentHeight = 0
	}

	leftWidth := w * 30 / 100
	if leftWidth > 40 {
		leftWidth = 40
	}
	rightX := leftWidth + 1
	rightWidth := w - rightX
	if rightWidth < 0 {
		rightWidth = 0
	}

	bandHeight := contentHeight / 3
	statusRect := cellbuf.NewRect(0, contentTop, leftWidth, bandHeight)
	branchesRect := cellbuf.NewRect(0, contentTop+bandHeight, leftWidth, bandHeight)
	commitsTop := contentTop + 2*bandHeight
	commitsHeight := contentHeight - 2*bandHeight
	commitsRect := cellbuf.NewRect(0, commitsTop, leftWidth, commitsHeight)

	mainRect := cellbuf.NewRect(rightX, contentTop, rightWidth, contentHeight)

	return Layout{
		HeaderRow: headerRow,
		FooterRow: footerRow,
		Status:    statusRect,
		Branches:  branchesRect,
		Commits:   commitsRect,
		Main:      mainRect,
	}
}
