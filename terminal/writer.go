package terminal

import (
	"bufio"
	"io"

	"github.com/lixenwraith/gridterm/color"
	"github.com/lixenwraith/gridterm/screen"
)

// writer encodes render operations into direct ANSI sequences. It tracks
// the physical cursor and the last emitted style so contiguous cells and
// same-styled runs cost no extra bytes. One writer exists per Terminal;
// it implements screen.RenderSink.
type writer struct {
	w          *bufio.Writer
	capability color.Capability

	cursorX     int
	cursorY     int
	cursorValid bool

	lastStyle screen.Style
	lastValid bool
}

func newWriter(out io.Writer, capability color.Capability) *writer {
	return &writer{
		w:          bufio.NewWriterSize(out, 65536),
		capability: capability,
	}
}

// MoveTo positions the physical cursor, preferring a short forward move
// over absolute addressing when the target is on the current row.
func (e *writer) MoveTo(x, y int) {
	if e.cursorValid && x == e.cursorX && y == e.cursorY {
		return
	}
	if e.cursorValid && y == e.cursorY && x > e.cursorX {
		writeCursorForward(e.w, x-e.cursorX)
	} else {
		writeCursorPos(e.w, x, y)
	}
	e.cursorX, e.cursorY = x, y
	e.cursorValid = true
}

// WriteCells emits one dirty run, restyling only where the style actually
// changes within it.
func (e *writer) WriteCells(cells []screen.Cell) {
	for _, c := range cells {
		e.setStyle(c.Style())
		r := c.Rune
		if r == 0 {
			r = ' '
		}
		if r < 0x80 {
			e.w.WriteByte(byte(r))
		} else {
			e.w.WriteRune(r)
		}
		e.cursorX++
	}
}

// setStyle emits the minimal SGR transition from the last emitted style.
// Attribute changes force a reset-and-rebuild; color-only changes emit
// just the changed color.
func (e *writer) setStyle(s screen.Style) {
	fgChanged := !e.lastValid || !s.Fg.Equal(e.lastStyle.Fg)
	bgChanged := !e.lastValid || !s.Bg.Equal(e.lastStyle.Bg)
	attrChanged := !e.lastValid || s.Attrs != e.lastStyle.Attrs

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	if attrChanged {
		// Reset wipes colors too, so rebuild everything in one sequence.
		e.w.Write(csi)
		e.w.WriteByte('0')
		writeAttrParams(e.w, s.Attrs)
		e.writeFgParams(s.Fg)
		e.writeBgParams(s.Bg)
		e.w.WriteByte('m')
	} else {
		if fgChanged {
			e.writeFgFull(s.Fg)
		}
		if bgChanged {
			e.writeBgFull(s.Bg)
		}
	}

	e.lastStyle = s
	e.lastValid = true
}

// writeAttrParams appends ";N" SGR parameters for each set attribute bit.
func writeAttrParams(w *bufio.Writer, a screen.Attr) {
	pairs := []struct {
		bit  screen.Attr
		code byte
	}{
		{screen.AttrBold, '1'},
		{screen.AttrDim, '2'},
		{screen.AttrItalic, '3'},
		{screen.AttrUnderline, '4'},
		{screen.AttrBlink, '5'},
		{screen.AttrReverse, '7'},
		{screen.AttrStrike, '9'},
	}
	for _, p := range pairs {
		if a&p.bit != 0 {
			w.WriteByte(';')
			w.WriteByte(p.code)
		}
	}
}

// writeFgParams appends foreground parameters (";38;..." form) inside an
// open CSI sequence.
func (e *writer) writeFgParams(fg color.Color) {
	if e.capability == color.NoColor {
		return
	}
	e.w.WriteByte(';')
	if fg.Equal(color.DefaultFg) {
		e.w.WriteString("39")
		return
	}
	switch e.capability {
	case color.TrueColor:
		e.w.WriteString("38;2;")
		writeInt(e.w, int(fg.R))
		e.w.WriteByte(';')
		writeInt(e.w, int(fg.G))
		e.w.WriteByte(';')
		writeInt(e.w, int(fg.B))
	case color.Ansi256:
		e.w.WriteString("38;5;")
		writeInt(e.w, int(fg.Index256()))
	case color.Greyscale:
		e.w.WriteString("38;5;")
		writeInt(e.w, int(fg.GreyIndex256()))
	default: // Ansi16
		writeInt(e.w, ansi16SGR(fg.Index16(), false))
	}
}

// writeBgParams appends background parameters inside an open CSI sequence.
func (e *writer) writeBgParams(bg color.Color) {
	if e.capability == color.NoColor {
		return
	}
	e.w.WriteByte(';')
	if bg.Equal(color.DefaultBg) {
		e.w.WriteString("49")
		return
	}
	switch e.capability {
	case color.TrueColor:
		e.w.WriteString("48;2;")
		writeInt(e.w, int(bg.R))
		e.w.WriteByte(';')
		writeInt(e.w, int(bg.G))
		e.w.WriteByte(';')
		writeInt(e.w, int(bg.B))
	case color.Ansi256:
		e.w.WriteString("48;5;")
		writeInt(e.w, int(bg.Index256()))
	case color.Greyscale:
		e.w.WriteString("48;5;")
		writeInt(e.w, int(bg.GreyIndex256()))
	default: // Ansi16
		writeInt(e.w, ansi16SGR(bg.Index16(), true))
	}
}

// writeFgFull emits a complete foreground sequence.
func (e *writer) writeFgFull(fg color.Color) {
	if e.capability == color.NoColor {
		return
	}
	if fg.Equal(color.DefaultFg) {
		e.w.Write(csiDefaultFg)
		return
	}
	switch e.capability {
	case color.TrueColor:
		e.w.Write(csiFgRGB)
		writeInt(e.w, int(fg.R))
		e.w.WriteByte(';')
		writeInt(e.w, int(fg.G))
		e.w.WriteByte(';')
		writeInt(e.w, int(fg.B))
	case color.Ansi256:
		e.w.Write(csiFg256)
		writeInt(e.w, int(fg.Index256()))
	case color.Greyscale:
		e.w.Write(csiFg256)
		writeInt(e.w, int(fg.GreyIndex256()))
	default: // Ansi16
		e.w.Write(csi)
		writeInt(e.w, ansi16SGR(fg.Index16(), false))
	}
	e.w.WriteByte('m')
}

// writeBgFull emits a complete background sequence.
func (e *writer) writeBgFull(bg color.Color) {
	if e.capability == color.NoColor {
		return
	}
	if bg.Equal(color.DefaultBg) {
		e.w.Write(csiDefaultBg)
		return
	}
	switch e.capability {
	case color.TrueColor:
		e.w.Write(csiBgRGB)
		writeInt(e.w, int(bg.R))
		e.w.WriteByte(';')
		writeInt(e.w, int(bg.G))
		e.w.WriteByte(';')
		writeInt(e.w, int(bg.B))
	case color.Ansi256:
		e.w.Write(csiBg256)
		writeInt(e.w, int(bg.Index256()))
	case color.Greyscale:
		e.w.Write(csiBg256)
		writeInt(e.w, int(bg.GreyIndex256()))
	default: // Ansi16
		e.w.Write(csi)
		writeInt(e.w, ansi16SGR(bg.Index16(), true))
	}
	e.w.WriteByte('m')
}

// ansi16SGR maps a standard-palette index to its SGR parameter.
func ansi16SGR(index int, background bool) int {
	code := 30 + index
	if index >= 8 {
		code = 90 + index - 8
	}
	if background {
		code += 10
	}
	return code
}

// reset clears attributes on the wire and forgets tracked state.
func (e *writer) reset() {
	e.w.Write(csiSGR0)
	e.lastValid = false
}

// invalidate forgets the tracked cursor position, e.g. after raw
// sequences moved it.
func (e *writer) invalidate() {
	e.cursorValid = false
	e.lastValid = false
}

// raw writes a control sequence, bypassing diff state.
func (e *writer) raw(seq []byte) {
	e.w.Write(seq)
}

func (e *writer) flush() {
	e.w.Flush()
}
