package screen

import (
	"errors"
)

// ErrOutOfBounds reports a read outside the buffer extent.
var ErrOutOfBounds = errors.New("coordinates out of buffer bounds")

// Buffer is a fixed-size grid of cells representing one complete frame.
// Cells are row-major: index y*width + x.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer filled with default cells. Negative
// dimensions clamp to zero.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Resize reallocates the grid to the new dimensions, discarding prior
// content and filling with default cells. Allocation is skipped when the
// existing capacity suffices.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Fill(DefaultCell())
}

// Fill sets every cell using exponential copy.
func (b *Buffer) Fill(c Cell) {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = c
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at (x, y). Out-of-bounds coordinates report
// ErrOutOfBounds; interior access never panics.
func (b *Buffer) Get(x, y int) (Cell, error) {
	if !b.inBounds(x, y) {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[y*b.width+x], nil
}

// Set places one cell, silently clipping out-of-bounds coordinates.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// WriteCells places a run starting at (x, y), clipping any portion
// outside the row. It never wraps; wrapping belongs to the terminal
// façade. Returns the number of cells placed.
func (b *Buffer) WriteCells(x, y int, run []Cell) int {
	start, skip := clipRun(x, len(run), b.width)
	if y < 0 || y >= b.height || start < 0 {
		return 0
	}
	placed := copy(b.cells[y*b.width+start:(y+1)*b.width], run[skip:])
	return placed
}

// clipRun resolves a horizontal placement against a row of the given
// width. Returns the clipped start column and how many leading run cells
// fall off the left edge; start is -1 when nothing lands in the row.
func clipRun(x, runLen, width int) (start, skip int) {
	if runLen == 0 || x >= width {
		return -1, 0
	}
	start, skip = x, 0
	if x < 0 {
		skip = -x
		start = 0
		if skip >= runLen {
			return -1, 0
		}
	}
	return start, skip
}

// ScrollUp shifts content up by n rows, discarding the topmost rows and
// filling the vacated bottom rows with default cells.
func (b *Buffer) ScrollUp(n int) {
	if n <= 0 || b.height == 0 {
		return
	}
	if n >= b.height {
		b.Fill(DefaultCell())
		return
	}
	copy(b.cells, b.cells[n*b.width:])
	blank := DefaultCell()
	for i := (b.height - n) * b.width; i < len(b.cells); i++ {
		b.cells[i] = blank
	}
}

// CopyFrom makes the buffer an exact copy of other, resizing as needed.
func (b *Buffer) CopyFrom(other *Buffer) {
	if b.width != other.width || b.height != other.height {
		b.Resize(other.width, other.height)
	}
	copy(b.cells, other.cells)
}

// row returns the cells of row y. Callers must hold y in bounds.
func (b *Buffer) row(y int) []Cell {
	return b.cells[y*b.width : (y+1)*b.width]
}
