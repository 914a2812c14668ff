// Package screen holds the double-buffered frame model: cells, styled
// spans, the buffer grid, and the diff engine that turns two successive
// frames into a minimal stream of render operations.
package screen

import (
	"github.com/lixenwraith/gridterm/color"
)

// Attr represents text attributes (bitmask).
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrStrike    Attr = 1 << 6
)

// Style is the fixed-field style record applied to a cell: resolved
// foreground, resolved background, attribute bitset.
type Style struct {
	Fg    color.Color
	Bg    color.Color
	Attrs Attr
}

// DefaultStyle paints with the terminal default colors and no attributes.
func DefaultStyle() Style {
	return Style{Fg: color.DefaultFg, Bg: color.DefaultBg}
}

// Equal reports whether two styles resolve identically.
func (s Style) Equal(other Style) bool {
	return s.Fg.Equal(other.Fg) && s.Bg.Equal(other.Bg) && s.Attrs == other.Attrs
}

// Cell is the smallest addressable unit of the screen: one glyph slot
// plus its resolved style. One cell holds one code point; combining marks
// and wide characters are not given special width treatment.
type Cell struct {
	Rune  rune
	Fg    color.Color
	Bg    color.Color
	Attrs Attr
}

// DefaultCell is the untouched slot: a space in terminal default colors.
func DefaultCell() Cell {
	return Cell{Rune: ' ', Fg: color.DefaultFg, Bg: color.DefaultBg}
}

// NewCell builds a cell from a glyph and a style.
func NewCell(r rune, style Style) Cell {
	return Cell{Rune: r, Fg: style.Fg, Bg: style.Bg, Attrs: style.Attrs}
}

// Style returns the cell's style record.
func (c Cell) Style() Style {
	return Style{Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs}
}

// Equal reports whether two cells resolve to the same displayed output:
// glyph, both colors, and attributes all match.
func (c Cell) Equal(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Attrs == other.Attrs &&
		c.Fg.Equal(other.Fg) &&
		c.Bg.Equal(other.Bg)
}
