package cellbuf

import (
	"unicode"

	"github.com/rivo/uniseg"
	"github.com/unilibs/uniwidth"
)

// Graphemes splits s into user-perceived characters (grapheme clusters).
// Byte-indexed slicing of repository content (paths, commit messages) is
// forbidden by spec.md §4.2 because it may contain multibyte characters;
// every cursor/truncation operation in this package goes through this split.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// ClusterWidth reports the terminal column width of a single grapheme
// cluster: 0 for combining/zero-width, 1 for ASCII, 2 for wide glyphs. Only
// the cluster's base rune contributes width — modifiers, ZWJ continuations
// and combining marks never add columns.
func ClusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	runes := []rune(cluster)
	return uniwidth.RuneWidth(runes[0])
}

// StringWidth is the sum of ClusterWidth over every grapheme cluster in s.
func StringWidth(s string) int {
	if s == "" {
		return 0
	}
	if !hasComplexUnicode(s) {
		return uniwidth.StringWidth(s)
	}
	width := 0
	for _, cl := range Graphemes(s) {
		width += ClusterWidth(cl)
	}
	return width
}

// hasComplexUnicode reports whether s contains sequences that require
// grapheme-cluster-aware width accounting (ZWJ, variation selectors, emoji
// modifiers, combining marks) rather than the fast per-rune path.
func hasComplexUnicode(s string) bool {
	for _, r := range s {
		switch {
		case r == 0x200D:
			return true
		case r >= 0xFE00 && r <= 0xFE0F:
			return true
		case r >= 0x1F3FB && r <= 0x1F3FF:
			return true
		case unicode.In(r, unicode.Mn, unicode.Me, unicode.Mc):
			return true
		}
	}
	return false
}
