package terminal

import (
	"errors"
	"io"

	"github.com/lixenwraith/gridterm/color"
	"github.com/lixenwraith/gridterm/screen"
)

var ErrNotInitialized = errors.New("terminal not initialized")

// OverflowPolicy selects what happens when a write advances the cursor
// past the bottom row.
type OverflowPolicy int

const (
	// OverflowClamp stops writing and pins the cursor to the last cell.
	OverflowClamp OverflowPolicy = iota
	// OverflowScroll scrolls the pending buffer up one row and continues
	// on the freed bottom row.
	OverflowScroll
)

// Size carries terminal dimensions through ResizeChan.
type Size struct {
	Width  int
	Height int
}

// Terminal owns a Backend, a double-buffered Screen and an ANSI encoder,
// and tracks a logical cursor with wrap semantics. It is not safe for
// concurrent use; drive it from a single goroutine.
type Terminal struct {
	backend    Backend
	enc        *writer
	scr        *screen.Screen
	capability color.Capability
	policy     OverflowPolicy

	style         screen.Style
	cursorX       int
	cursorY       int
	cursorVisible bool
	altActive     bool
	titleSet      bool
	initialized   bool

	capabilitySet bool
	resizeCh      chan Size
}

// Option configures a Terminal before Init.
type Option func(*Terminal)

// WithBackend replaces the default tty backend.
func WithBackend(b Backend) Option {
	return func(t *Terminal) { t.backend = b }
}

// WithOutput renders to an arbitrary io.Writer with a fixed size,
// bypassing the tty. Useful headless and in tests.
func WithOutput(out io.Writer, width, height int) Option {
	return func(t *Terminal) { t.backend = NewWriterBackend(out, width, height) }
}

// WithCapability overrides environment detection.
func WithCapability(c color.Capability) Option {
	return func(t *Terminal) {
		t.capability = c
		t.capabilitySet = true
	}
}

// WithOverflowPolicy sets the bottom-edge behavior for Write.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(t *Terminal) { t.policy = p }
}

func New(opts ...Option) *Terminal {
	t := &Terminal{
		style:         screen.DefaultStyle(),
		cursorVisible: true,
		resizeCh:      make(chan Size, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.backend == nil {
		t.backend = newBackend()
	}
	if !t.capabilitySet {
		t.capability = Detect()
	}
	return t
}

// Init puts the backend into raw mode, sizes the screen and disables
// autowrap. The terminal starts on the normal buffer with the cursor
// visible at the origin.
func (t *Terminal) Init() error {
	if t.initialized {
		return nil
	}
	if err := t.backend.Init(); err != nil {
		return err
	}
	w, h := t.backend.Size()
	t.scr = screen.NewScreen(w, h)
	t.enc = newWriter(backendWriter{t.backend}, t.capability)
	t.backend.SetResizeHandler(t.onResize)
	t.enc.raw(csiAutoWrapOff)
	t.enc.flush()
	t.cursorX, t.cursorY = 0, 0
	t.cursorVisible = true
	t.initialized = true
	return nil
}

// Fini restores the terminal unconditionally. Safe to call more than
// once and from deferred cleanup paths.
func (t *Terminal) Fini() {
	if !t.initialized {
		return
	}
	t.enc.reset()
	if t.altActive {
		t.enc.raw(csiAltScreenExit)
		t.altActive = false
	}
	if t.titleSet {
		t.enc.raw(oscTitleRestore)
		t.titleSet = false
	}
	t.enc.raw(csiAutoWrapOn)
	t.enc.raw(csiCursorShow)
	t.enc.flush()
	t.backend.Fini()
	t.initialized = false
}

// Capability reports the color capability frames are encoded for.
func (t *Terminal) Capability() color.Capability {
	return t.capability
}

// Size reports the current screen dimensions.
func (t *Terminal) Size() (width, height int) {
	if t.scr != nil {
		return t.scr.Size()
	}
	return t.backend.Size()
}

// Screen exposes the underlying double-buffered model for callers that
// need direct cell access.
func (t *Terminal) Screen() *screen.Screen {
	return t.scr
}

// ResizeChan delivers window size changes. Only the most recent size is
// retained; intermediate sizes during a drag are dropped.
func (t *Terminal) ResizeChan() <-chan Size {
	return t.resizeCh
}

func (t *Terminal) onResize(w, h int) {
	select {
	case <-t.resizeCh:
	default:
	}
	select {
	case t.resizeCh <- Size{Width: w, Height: h}:
	default:
	}
}

// SetStyle sets the base style applied to raw text writes. Spans and
// cell runs carry their own styles and ignore it.
func (t *Terminal) SetStyle(s screen.Style) {
	t.style = s
}

func (t *Terminal) Style() screen.Style {
	return t.style
}

// Cursor reports the logical cursor position.
func (t *Terminal) Cursor() (x, y int) {
	return t.cursorX, t.cursorY
}

// MoveCursor sets the logical cursor, clamped to the screen, and moves
// the physical cursor to match.
func (t *Terminal) MoveCursor(x, y int) {
	w, h := t.Size()
	t.cursorX = clampInt(x, 0, w-1)
	t.cursorY = clampInt(y, 0, h-1)
	if t.initialized {
		t.enc.MoveTo(t.cursorX, t.cursorY)
		t.enc.flush()
	}
}

// ShowCursor toggles cursor visibility.
func (t *Terminal) ShowCursor(visible bool) {
	t.cursorVisible = visible
	if !t.initialized {
		return
	}
	if visible {
		t.enc.raw(csiCursorShow)
	} else {
		t.enc.raw(csiCursorHide)
	}
	t.enc.flush()
}

// Write places content at the logical cursor and advances it, wrapping
// at the right edge. A newline in raw text moves to the start of the
// next row. The bottom edge follows the configured OverflowPolicy.
// Returns the number of placed cells that differ from what is on
// screen.
func (t *Terminal) Write(content screen.Content) int {
	if t.scr == nil {
		return 0
	}
	changed, x, y := t.blit(content.Cells(t.style), t.cursorX, t.cursorY)
	t.cursorX, t.cursorY = x, y
	return changed
}

// WriteAt places content at an explicit position with the same wrap
// semantics as Write, leaving the logical cursor untouched.
func (t *Terminal) WriteAt(x, y int, content screen.Content) int {
	if t.scr == nil {
		return 0
	}
	changed, _, _ := t.blit(content.Cells(t.style), x, y)
	return changed
}

// blit feeds cells into the pending buffer starting at (x, y), wrapping
// rows and applying the overflow policy. Returns the changed-cell count
// and the final cursor position.
func (t *Terminal) blit(cells []screen.Cell, x, y int) (int, int, int) {
	w, h := t.scr.Size()
	if w <= 0 || h <= 0 {
		return 0, 0, 0
	}
	x = clampInt(x, 0, w-1)
	y = clampInt(y, 0, h-1)

	changed := 0
	i := 0
	for i < len(cells) {
		if cells[i].Rune == '\n' {
			i++
			x = 0
			ny, stop := t.advanceRow(y, h)
			y = ny
			if stop {
				return changed, w - 1, h - 1
			}
			continue
		}
		if x >= w {
			x = 0
			ny, stop := t.advanceRow(y, h)
			y = ny
			if stop {
				return changed, w - 1, h - 1
			}
		}
		// Longest run fitting on this row up to the next newline.
		end := i
		for end < len(cells) && end-i < w-x && cells[end].Rune != '\n' {
			end++
		}
		changed += t.scr.Write(x, y, cells[i:end])
		x += end - i
		i = end
	}
	// The cursor wraps eagerly when a write fills the row exactly.
	if x >= w {
		x = 0
		ny, stop := t.advanceRow(y, h)
		y = ny
		if stop {
			return changed, w - 1, h - 1
		}
	}
	return changed, x, y
}

// advanceRow moves to the next row, scrolling or clamping at the bottom
// edge per the policy. stop is true when writing must cease.
func (t *Terminal) advanceRow(y, h int) (next int, stop bool) {
	if y+1 < h {
		return y + 1, false
	}
	if t.policy == OverflowScroll {
		t.scr.Pending().ScrollUp(1)
		return h - 1, false
	}
	return h - 1, true
}

// Clear resets the pending buffer to default cells and homes the
// logical cursor. The display updates on the next Draw.
func (t *Terminal) Clear() {
	if t.scr == nil {
		return
	}
	t.scr.Clear()
	t.cursorX, t.cursorY = 0, 0
}

// Draw flushes pending changes to the backend and repositions the
// physical cursor at the logical one. Picks up window resizes lazily,
// forcing a full repaint when dimensions changed. Returns the number of
// cells written.
func (t *Terminal) Draw() int {
	if !t.initialized {
		return 0
	}
	bw, bh := t.backend.Size()
	if sw, sh := t.scr.Size(); bw != sw || bh != sh {
		t.scr.Resize(bw, bh)
		t.cursorX = clampInt(t.cursorX, 0, bw-1)
		t.cursorY = clampInt(t.cursorY, 0, bh-1)
	}
	if t.cursorVisible {
		t.enc.raw(csiCursorHide)
	}
	changed := t.scr.Draw(t.enc)
	if changed > 0 {
		t.enc.reset()
	}
	t.enc.MoveTo(t.cursorX, t.cursorY)
	if t.cursorVisible {
		t.enc.raw(csiCursorShow)
	}
	t.enc.flush()
	return changed
}

// Redraw clears the display and forces the next Draw to repaint every
// cell. Use after external programs may have written to the tty.
func (t *Terminal) Redraw() {
	if !t.initialized {
		return
	}
	t.enc.raw(csiClear)
	t.enc.invalidate()
	t.scr.Invalidate()
	t.enc.flush()
}

// Batch brackets fn in a synchronized update so terminals that support
// mode 2026 present intermediate Draws as one frame.
func (t *Terminal) Batch(fn func()) {
	if !t.initialized {
		fn()
		return
	}
	t.enc.raw(csiSyncBegin)
	defer func() {
		t.enc.raw(csiSyncEnd)
		t.enc.flush()
	}()
	fn()
}

// AltBuffer runs fn on the alternate screen buffer. Cursor position,
// visibility and the primary screen contents are restored on every exit
// path, including when fn errors or panics.
func (t *Terminal) AltBuffer(fn func() error) error {
	if !t.initialized {
		return ErrNotInitialized
	}
	savedX, savedY := t.cursorX, t.cursorY
	savedVisible := t.cursorVisible
	savedScreen := t.scr

	w, h := savedScreen.Size()
	t.enc.raw(escCursorSave)
	t.enc.raw(csiAltScreenEnter)
	t.enc.raw(csiCursorHide)
	t.enc.invalidate()
	t.enc.flush()
	t.altActive = true
	t.cursorVisible = false
	t.cursorX, t.cursorY = 0, 0
	t.scr = screen.NewScreen(w, h)

	defer func() {
		t.enc.raw(csiAltScreenExit)
		t.enc.raw(escCursorRestore)
		if savedVisible {
			t.enc.raw(csiCursorShow)
		}
		t.enc.invalidate()
		t.enc.flush()
		t.altActive = false
		t.cursorX, t.cursorY = savedX, savedY
		t.cursorVisible = savedVisible
		t.scr = savedScreen
	}()
	return fn()
}

// SetTitle sets the window title, saving the original on first use so
// Fini can restore it.
func (t *Terminal) SetTitle(title string) {
	if !t.initialized {
		return
	}
	if !t.titleSet {
		t.enc.raw(oscTitleStore)
		t.titleSet = true
	}
	t.enc.raw(oscTitleSet)
	t.enc.w.WriteString(title)
	t.enc.raw(bel)
	t.enc.flush()
}

// Bell sounds the terminal bell.
func (t *Terminal) Bell() {
	if !t.initialized {
		return
	}
	t.enc.raw(bel)
	t.enc.flush()
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
