package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lixenwraith/gridterm/color"
	"github.com/lixenwraith/gridterm/screen"
)

// testBackend is an in-memory Backend with a mutable size.
type testBackend struct {
	buf     bytes.Buffer
	width   int
	height  int
	handler func(width, height int)
}

func newTestBackend(width, height int) *testBackend {
	return &testBackend{width: width, height: height}
}

func (b *testBackend) Init() error { return nil }
func (b *testBackend) Fini()       {}
func (b *testBackend) Size() (int, int) {
	return b.width, b.height
}
func (b *testBackend) Write(p []byte) error {
	_, err := b.buf.Write(p)
	return err
}
func (b *testBackend) SetResizeHandler(handler func(width, height int)) {
	b.handler = handler
}

func newTestTerminal(t *testing.T, width, height int, opts ...Option) (*Terminal, *testBackend) {
	t.Helper()
	tb := newTestBackend(width, height)
	opts = append([]Option{WithBackend(tb), WithCapability(color.NoColor)}, opts...)
	term := New(opts...)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	tb.buf.Reset()
	return term, tb
}

func cellAt(t *testing.T, term *Terminal, x, y int) screen.Cell {
	t.Helper()
	c, err := term.Screen().Pending().Get(x, y)
	if err != nil {
		t.Fatalf("Get(%d,%d): %v", x, y, err)
	}
	return c
}

func TestCursorWrapsAfterFullRow(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("0123456789"))

	if x, y := term.Cursor(); x != 0 || y != 1 {
		t.Errorf("cursor after full-row write = (%d,%d), want (0,1)", x, y)
	}
}

func TestWriteAdvancesCursor(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("abc"))

	if x, y := term.Cursor(); x != 3 || y != 0 {
		t.Errorf("cursor = (%d,%d), want (3,0)", x, y)
	}
	if c := cellAt(t, term, 2, 0); c.Rune != 'c' {
		t.Errorf("cell (2,0) = %q, want 'c'", c.Rune)
	}
}

func TestWriteAtLeavesCursor(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	changed := term.WriteAt(2, 2, screen.Text("xy"))

	if changed != 2 {
		t.Errorf("WriteAt changed = %d, want 2", changed)
	}
	if x, y := term.Cursor(); x != 0 || y != 0 {
		t.Errorf("cursor moved to (%d,%d) by WriteAt", x, y)
	}
	if c := cellAt(t, term, 3, 2); c.Rune != 'y' {
		t.Errorf("cell (3,2) = %q, want 'y'", c.Rune)
	}
}

func TestNewlineMovesToNextRowStart(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("ab\ncd"))

	if x, y := term.Cursor(); x != 2 || y != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", x, y)
	}
	if c := cellAt(t, term, 0, 1); c.Rune != 'c' {
		t.Errorf("cell (0,1) = %q, want 'c'", c.Rune)
	}
}

func TestWriteCountsOnlyChangedCells(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	if n := term.Write(screen.Text("abc")); n != 3 {
		t.Errorf("first write changed = %d, want 3", n)
	}
	term.Draw()

	term.MoveCursor(0, 0)
	if n := term.Write(screen.Text("abc")); n != 0 {
		t.Errorf("identical rewrite changed = %d, want 0", n)
	}
}

func TestOverflowClampStopsAtBottom(t *testing.T) {
	term, _ := newTestTerminal(t, 4, 2)

	term.MoveCursor(0, 1)
	changed := term.Write(screen.Text("abcdefgh"))

	if changed != 4 {
		t.Errorf("clamped write changed = %d, want 4", changed)
	}
	if x, y := term.Cursor(); x != 3 || y != 1 {
		t.Errorf("cursor = (%d,%d), want pinned at (3,1)", x, y)
	}
	if c := cellAt(t, term, 3, 1); c.Rune != 'd' {
		t.Errorf("cell (3,1) = %q, want 'd'", c.Rune)
	}
	if c := cellAt(t, term, 0, 0); c.Rune != ' ' {
		t.Errorf("cell (0,0) = %q, clamp must not scroll", c.Rune)
	}
}

func TestOverflowScrollContinuesAtBottom(t *testing.T) {
	term, _ := newTestTerminal(t, 4, 2, WithOverflowPolicy(OverflowScroll))

	term.MoveCursor(0, 1)
	term.Write(screen.Text("abcdefg"))

	if c := cellAt(t, term, 0, 0); c.Rune != 'a' {
		t.Errorf("cell (0,0) = %q, want 'a' scrolled up", c.Rune)
	}
	if c := cellAt(t, term, 0, 1); c.Rune != 'e' {
		t.Errorf("cell (0,1) = %q, want 'e'", c.Rune)
	}
	if x, y := term.Cursor(); x != 3 || y != 1 {
		t.Errorf("cursor = (%d,%d), want (3,1)", x, y)
	}
}

func TestDrawEmitsPositionedRuns(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("hi"))
	term.Draw()

	if !strings.Contains(tb.buf.String(), "\x1b[1;1H\x1b[0mhi") {
		t.Errorf("frame = %q, want positioned run at origin", tb.buf.String())
	}
}

func TestDrawReturnsCellCount(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("hello"))
	if n := term.Draw(); n != 5 {
		t.Errorf("first draw = %d, want 5", n)
	}
	if n := term.Draw(); n != 0 {
		t.Errorf("clean draw = %d, want 0", n)
	}
}

func TestDrawPicksUpResize(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("hello"))
	term.Draw()

	tb.width, tb.height = 4, 3
	if n := term.Draw(); n != 12 {
		t.Errorf("post-resize draw = %d, want full repaint of 12", n)
	}
	if w, h := term.Size(); w != 4 || h != 3 {
		t.Errorf("size = %dx%d, want 4x3", w, h)
	}
}

func TestResizeClampsCursor(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.MoveCursor(9, 4)
	tb.width, tb.height = 4, 3
	term.Draw()

	if x, y := term.Cursor(); x != 3 || y != 2 {
		t.Errorf("cursor after shrink = (%d,%d), want (3,2)", x, y)
	}
}

func TestClearHomesCursorAndResetsCells(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	term.Write(screen.Text("abc"))
	term.Draw()
	term.Clear()

	if x, y := term.Cursor(); x != 0 || y != 0 {
		t.Errorf("cursor after Clear = (%d,%d), want origin", x, y)
	}
	if n := term.Draw(); n != 3 {
		t.Errorf("draw after Clear = %d, want 3 cells reverted", n)
	}
}

func TestAltBufferRestoresOnError(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)
	term.MoveCursor(2, 1)
	term.Write(screen.Text("base"))
	tb.buf.Reset()

	sentinel := errors.New("boom")
	err := term.AltBuffer(func() error {
		term.Write(screen.Text("alt content"))
		term.Draw()
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Errorf("AltBuffer err = %v, want sentinel", err)
	}
	if x, y := term.Cursor(); x != 6 || y != 1 {
		t.Errorf("cursor after alt = (%d,%d), want (6,1) restored", x, y)
	}
	if term.altActive {
		t.Error("altActive still set after exit")
	}
	out := tb.buf.String()
	if !strings.Contains(out, "\x1b[?1049h") || !strings.Contains(out, "\x1b[?1049l") {
		t.Errorf("frame %q missing alt enter/exit", out)
	}
	if c := cellAt(t, term, 2, 1); c.Rune != 'b' {
		t.Errorf("primary cell (2,1) = %q, want 'b' preserved", c.Rune)
	}
}

func TestAltBufferRestoresOnPanic(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("panic did not propagate")
			}
		}()
		term.AltBuffer(func() error {
			panic("boom")
		})
	}()

	if term.altActive {
		t.Error("altActive still set after panic")
	}
	if !strings.Contains(tb.buf.String(), "\x1b[?1049l") {
		t.Error("alt exit sequence not emitted on panic path")
	}
}

func TestAltBufferStartsClean(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)
	term.Write(screen.Text("primary"))
	term.Draw()

	term.AltBuffer(func() error {
		if c := cellAt(t, term, 0, 0); c.Rune != ' ' {
			t.Errorf("alt cell (0,0) = %q, want blank", c.Rune)
		}
		if x, y := term.Cursor(); x != 0 || y != 0 {
			t.Errorf("alt cursor = (%d,%d), want origin", x, y)
		}
		return nil
	})
}

func TestBatchWrapsInSynchronizedUpdate(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.Batch(func() {
		term.Write(screen.Text("x"))
		term.Draw()
	})

	out := tb.buf.String()
	begin := strings.Index(out, "\x1b[?2026h")
	end := strings.Index(out, "\x1b[?2026l")
	if begin < 0 || end < 0 || end < begin {
		t.Errorf("frame %q not bracketed by synchronized update", out)
	}
}

func TestSetTitleStoresOriginalOnce(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.SetTitle("one")
	term.SetTitle("two")

	if n := strings.Count(tb.buf.String(), "\x1b[22;0t"); n != 1 {
		t.Errorf("title stored %d times, want 1", n)
	}

	term.Fini()
	if !strings.Contains(tb.buf.String(), "\x1b[23;0t") {
		t.Error("Fini did not restore title")
	}
}

func TestFiniIsIdempotent(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	term.Fini()
	out := tb.buf.String()
	if !strings.Contains(out, "\x1b[?7h") || !strings.Contains(out, "\x1b[?25h") {
		t.Errorf("teardown %q missing autowrap/cursor restore", out)
	}

	tb.buf.Reset()
	term.Fini()
	if tb.buf.Len() != 0 {
		t.Errorf("second Fini emitted %q", tb.buf.String())
	}
}

func TestResizeChanCoalesces(t *testing.T) {
	term, tb := newTestTerminal(t, 10, 5)

	tb.handler(20, 10)
	tb.handler(8, 4)

	select {
	case sz := <-term.ResizeChan():
		if sz.Width != 8 || sz.Height != 4 {
			t.Errorf("resize = %dx%d, want latest 8x4", sz.Width, sz.Height)
		}
	default:
		t.Fatal("no resize delivered")
	}
}

func TestStyledSpanWrite(t *testing.T) {
	term, _ := newTestTerminal(t, 10, 5)

	red := color.RGB(255, 0, 0)
	term.Write(screen.Spans(screen.NewSpan("hi", screen.WithFg(red))))

	c := cellAt(t, term, 0, 0)
	if !c.Fg.Equal(red) {
		t.Errorf("cell fg = %v, want red span style", c.Fg)
	}
}

func TestWriteBeforeInitIsNoop(t *testing.T) {
	term := New(WithBackend(newTestBackend(10, 5)), WithCapability(color.NoColor))

	if n := term.Write(screen.Text("abc")); n != 0 {
		t.Errorf("pre-init write = %d, want 0", n)
	}
	if n := term.Draw(); n != 0 {
		t.Errorf("pre-init draw = %d, want 0", n)
	}
}
