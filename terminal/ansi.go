package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide    = []byte("\x1b[?25l")
	csiCursorShow    = []byte("\x1b[?25h")
	csiCursorPos     = []byte("\x1b[") // followed by row;colH
	escCursorSave    = []byte("\x1b7") // DECSC
	escCursorRestore = []byte("\x1b8") // DECRC

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: ?7l disables wrapping so a write to the bottom-right
	// corner cannot scroll the display
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Synchronized update (batched presentation)
	csiSyncBegin = []byte("\x1b[?2026h")
	csiSyncEnd   = []byte("\x1b[?2026l")

	// Window title
	oscTitleStore   = []byte("\x1b[22;0t")
	oscTitleRestore = []byte("\x1b[23;0t")
	oscTitleSet     = []byte("\x1b]0;") // followed by title BEL

	// Color prefixes
	csiFg256     = []byte("\x1b[38;5;") // followed by N m
	csiBg256     = []byte("\x1b[48;5;") // followed by N m
	csiFgRGB     = []byte("\x1b[38;2;") // followed by R;G;B m
	csiBgRGB     = []byte("\x1b[48;2;") // followed by R;G;B m
	csiDefaultFg = []byte("\x1b[39m")
	csiDefaultBg = []byte("\x1b[49m")

	bel = []byte{0x07}
)

// writeInt writes an integer without allocation.
// Optimized for terminal values (0-255 common, 0-999 typical max).
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [8]byte
	i := 7
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes an absolute positioning sequence (0-indexed input).
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward moves the cursor right n columns.
func writeCursorForward(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.WriteString("\x1b[C")
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('C')
}
