package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gridterm/color"
	"github.com/lixenwraith/gridterm/screen"
)

// Conversions to and from tcell types, for code migrating off a
// tcell-based screen or embedding gridterm output in a tcell app.

// TcellAttr converts an attribute bitmask to tcell.AttrMask.
func TcellAttr(a screen.Attr) tcell.AttrMask {
	var mask tcell.AttrMask
	if a&screen.AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&screen.AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&screen.AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&screen.AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&screen.AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&screen.AttrReverse != 0 {
		mask |= tcell.AttrReverse
	}
	if a&screen.AttrStrike != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	return mask
}

// AttrFromTcell converts a tcell.AttrMask to an attribute bitmask.
func AttrFromTcell(mask tcell.AttrMask) screen.Attr {
	var a screen.Attr
	if mask&tcell.AttrBold != 0 {
		a |= screen.AttrBold
	}
	if mask&tcell.AttrDim != 0 {
		a |= screen.AttrDim
	}
	if mask&tcell.AttrItalic != 0 {
		a |= screen.AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= screen.AttrUnderline
	}
	if mask&tcell.AttrBlink != 0 {
		a |= screen.AttrBlink
	}
	if mask&tcell.AttrReverse != 0 {
		a |= screen.AttrReverse
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= screen.AttrStrike
	}
	return a
}

// TcellColor converts a Color to tcell.Color. The role defaults map to
// tcell.ColorDefault so the terminal's own defaults carry through.
func TcellColor(c color.Color) tcell.Color {
	if c.Equal(color.DefaultFg) || c.Equal(color.DefaultBg) {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// ColorFromTcell converts a tcell.Color, mapping ColorDefault to the
// role default. background selects the role of the result.
func ColorFromTcell(tc tcell.Color, background bool) color.Color {
	if tc == tcell.ColorDefault {
		if background {
			return color.DefaultBg
		}
		return color.DefaultFg
	}
	r, g, b := tc.TrueColor().RGB()
	c := color.RGB(uint8(r), uint8(g), uint8(b))
	return c.AsBackground(background)
}

// TcellStyle converts a Style to tcell.Style.
func TcellStyle(s screen.Style) tcell.Style {
	return tcell.StyleDefault.
		Foreground(TcellColor(s.Fg)).
		Background(TcellColor(s.Bg)).
		Attributes(TcellAttr(s.Attrs))
}

// StyleFromTcell converts a tcell.Style to a Style.
func StyleFromTcell(ts tcell.Style) screen.Style {
	fg, bg, attrs := ts.Decompose()
	return screen.Style{
		Fg:    ColorFromTcell(fg, false),
		Bg:    ColorFromTcell(bg, true),
		Attrs: AttrFromTcell(attrs),
	}
}

// TcellCell converts a Cell to the rune/style pair tcell screens take.
func TcellCell(c screen.Cell) (rune, tcell.Style) {
	return c.Rune, TcellStyle(c.Style())
}

// CellFromTcell builds a Cell from a rune and a tcell style.
func CellFromTcell(r rune, ts tcell.Style) screen.Cell {
	return screen.NewCell(r, StyleFromTcell(ts))
}
