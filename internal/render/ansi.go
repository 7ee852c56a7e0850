// Package render computes the minimal diff between two cellbuf.Buffers and
// emits the ANSI escape sequences needed to bring a terminal from one to the
// other (spec.md §4.2).
package render

import (
	"strconv"
	"strings"

	"github.com/gitpilot/gitpilot/internal/cellbuf"
)

const (
	csi           = "\x1b["
	cursorHide    = csi + "?25l"
	cursorShow    = csi + "?25h"
	fullStyleReset = csi + "0m"
)

// moveCursor returns the CSI sequence to move the cursor to (x, y), using
// 1-based row/column indexing as ANSI requires (spec.md uses 0,0 internally).
func moveCursor(x, y int) string {
	return csi + strconv.Itoa(y+1) + ";" + strconv.Itoa(x+1) + "H"
}

// styleDelta returns the escape sequence needed to move from "from" to "to".
// Per spec.md §4.2: emit a full reset followed by the active set only when
// an attribute disappears (stronger -> weaker transition); otherwise emit
// only the additive escapes needed to reach "to".
func styleDelta(from, to cellbuf.Style) string {
	if from.Equal(to) {
		return ""
	}

	var params []string
	if from.isWeakerThan(to) {
		params = append(params, "0")
		params = append(params, attrParams(to.Attrs)...)
		params = append(params, to.FG.fgParams()...)
		params = append(params, to.BG.bgParams()...)
	} else {
		if !from.FG.Equal(to.FG) {
			params = append(params, to.FG.fgParams()...)
		}
		if !from.BG.Equal(to.BG) {
			params = append(params, to.BG.bgParams()...)
		}
		params = append(params, addedAttrParams(from.Attrs, to.Attrs)...)
	}

	if len(params) == 0 {
		return ""
	}
	return csi + strings.Join(params, ";") + "m"
}

// attrParams returns the SGR parameters for every attribute set in attrs.
func attrParams(attrs cellbuf.Attr) []string {
	var out []string
	if attrs.Has(cellbuf.AttrBold) {
		out = append(out, "1")
	}
	if attrs.Has(cellbuf.AttrDim) {
		out = append(out, "2")
	}
	if attrs.Has(cellbuf.AttrItalic) {
		out = append(out, "3")
	}
	if attrs.Has(cellbuf.AttrUnderline) {
		out = append(out, "4")
	}
	if attrs.Has(cellbuf.AttrReverse) {
		out = append(out, "7")
	}
	return out
}

// addedAttrParams returns SGR parameters only for attributes present in to
// but absent from "from" — used on the additive (no-reset) path.
func addedAttrParams(from, to cellbuf.Attr) []string {
	return attrParams(to &^ from)
}
