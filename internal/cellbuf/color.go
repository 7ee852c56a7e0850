// Package cellbuf implements the renderer's data model: colors, styles, cells,
// rects and the double-buffered screen.
package cellbuf

import "fmt"

// ColorKind discriminates the variants of Color.
type ColorKind uint8

const (
	// ColorReset means "inherit the terminal's default foreground/background".
	ColorReset ColorKind = iota
	ColorNamed
	ColorPalette
	ColorRGB
)

// Named colors, the eight classic ANSI colors (30-37 / 40-47).
const (
	NamedBlack = iota
	NamedRed
	NamedGreen
	NamedYellow
	NamedBlue
	NamedMagenta
	NamedCyan
	NamedWhite
)

// Color is a tagged value: Reset, a named color, an 8-bit palette index, or an
// RGB triple. Only Reset means "inherit terminal default" (spec.md §3).
type Color struct {
	kind    ColorKind
	named   uint8
	palette uint8
	r, g, b uint8
}

// Reset returns the "inherit terminal default" color.
func Reset() Color { return Color{kind: ColorReset} }

// Named returns one of the eight classic ANSI colors. n is clamped to 0-7.
func Named(n int) Color {
	if n < 0 {
		n = 0
	}
	if n > 7 {
		n = 7
	}
	return Color{kind: ColorNamed, named: uint8(n)}
}

// Palette returns an 8-bit palette color (0-255).
func Palette(index uint8) Color {
	return Color{kind: ColorPalette, palette: index}
}

// RGB returns a 24-bit truecolor.
func RGB(r, g, b uint8) Color {
	return Color{kind: ColorRGB, r: r, g: g, b: b}
}

// Kind reports which variant this Color holds.
func (c Color) Kind() ColorKind { return c.kind }

// Equal reports whether two colors are identical in every field.
func (c Color) Equal(other Color) bool {
	return c == other
}

func (c Color) String() string {
	switch c.kind {
	case ColorReset:
		return "Reset"
	case ColorNamed:
		return fmt.Sprintf("Named(%d)", c.named)
	case ColorPalette:
		return fmt.Sprintf("Palette(%d)", c.palette)
	case ColorRGB:
		return fmt.Sprintf("RGB(%d,%d,%d)", c.r, c.g, c.b)
	default:
		return "Color(?)"
	}
}

// fgParams returns the foreground SGR parameter(s) for this color, without
// the CSI prefix or trailing "m" (for example "31", or "38", "5", "n" for a
// palette index), so several can be joined into a single CSI sequence.
func (c Color) fgParams() []string {
	switch c.kind {
	case ColorReset:
		return []string{"39"}
	case ColorNamed:
		return []string{fmt.Sprintf("%d", 30+c.named)}
	case ColorPalette:
		return []string{"38", "5", fmt.Sprintf("%d", c.palette)}
	case ColorRGB:
		return []string{"38", "2", fmt.Sprintf("%d", c.r), fmt.Sprintf("%d", c.g), fmt.Sprintf("%d", c.b)}
	default:
		return nil
	}
}

func (c Color) bgParams() []string {
	switch c.kind {
	case ColorReset:
		return []string{"49"}
	case ColorNamed:
		return []string{fmt.Sprintf("%d", 40+c.named)}
	case ColorPalette:
		return []string{"48", "5", fmt.Sprintf("%d", c.palette)}
	case ColorRGB:
		return []string{"48", "2", fmt.Sprintf("%d", c.r), fmt.Sprintf("%d", c.g), fmt.Sprintf("%d", c.b)}
	default:
		return nil
	}
}
