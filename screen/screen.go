package screen

// RenderSink consumes the ordered render operations produced by a draw:
// an absolute cursor move followed by the styled cells of one dirty run.
// The terminal encoder implements it; tests substitute a recorder.
type RenderSink interface {
	MoveTo(x, y int)
	WriteCells(cells []Cell)
}

// Screen owns two buffers of identical dimensions: pending, mutated by
// writes, and rendered, reflecting the last flushed frame. Draw computes
// the minimal cell-level difference between them.
type Screen struct {
	pending  *Buffer
	rendered *Buffer

	// forceRedraw marks the next draw as a full repaint, set by resize
	// and by mode transitions that invalidate the physical display.
	forceRedraw bool
}

// NewScreen creates a screen with both buffers at the given size. The
// rendered buffer starts as default cells, matching a freshly cleared
// display; callers presenting onto unknown content use Invalidate.
func NewScreen(width, height int) *Screen {
	return &Screen{
		pending:  NewBuffer(width, height),
		rendered: NewBuffer(width, height),
	}
}

// Size returns the pending buffer dimensions.
func (s *Screen) Size() (width, height int) {
	return s.pending.Size()
}

// Resize reallocates both buffers, discarding content, and forces the
// next draw to repaint everything.
func (s *Screen) Resize(width, height int) {
	s.pending.Resize(width, height)
	s.rendered.Resize(width, height)
	s.forceRedraw = true
}

// Clear resets the pending frame to default cells.
func (s *Screen) Clear() {
	s.pending.Fill(DefaultCell())
}

// Invalidate forces the next draw to repaint every cell. Used when the
// physical terminal no longer matches the rendered buffer, e.g. after an
// alternate-buffer transition.
func (s *Screen) Invalidate() {
	s.forceRedraw = true
}

// Pending exposes the frame being built, for read-back and direct cell
// placement.
func (s *Screen) Pending() *Buffer {
	return s.pending
}

// Write places a run into the pending frame, clipped to the row, and
// returns the number of placed cells that now differ from the rendered
// frame — the delta this write alone contributes to the next draw.
// Overwriting a cell with the value it already shows contributes zero.
func (s *Screen) Write(x, y int, run []Cell) int {
	placed := s.pending.WriteCells(x, y, run)
	if placed == 0 {
		return 0
	}

	start, _ := clipRun(x, len(run), s.pending.width)
	delta := 0
	for i := 0; i < placed; i++ {
		now, _ := s.pending.Get(start+i, y)
		prev, err := s.rendered.Get(start+i, y)
		if err != nil || !now.Equal(prev) {
			delta++
		}
	}
	return delta
}

// Draw diffs pending against rendered and feeds the sink one cursor move
// plus one styled write per maximal dirty run, row-major. Runs minimize
// repositioning: moving the cursor and restyling is the expensive part on
// a real terminal, not contiguous bytes. Afterwards pending becomes the
// new rendered baseline. Returns the number of changed cells; a clean
// frame emits zero operations.
func (s *Screen) Draw(sink RenderSink) int {
	w, h := s.pending.Size()
	rw, rh := s.rendered.Size()
	full := s.forceRedraw || w != rw || h != rh

	changed := 0
	for y := 0; y < h; y++ {
		row := s.pending.row(y)
		var prev []Cell
		if !full {
			prev = s.rendered.row(y)
		}

		x := 0
		for x < w {
			if !full && row[x].Equal(prev[x]) {
				x++
				continue
			}
			start := x
			for x < w && (full || !row[x].Equal(prev[x])) {
				x++
			}
			sink.MoveTo(start, y)
			sink.WriteCells(row[start:x])
			changed += x - start
		}
	}

	s.rendered.CopyFrom(s.pending)
	s.forceRedraw = false
	return changed
}
