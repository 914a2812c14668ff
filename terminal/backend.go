package terminal

import (
	"io"
)

// Backend abstracts the platform collaborator owning the real output
// device: raw mode entry/exit, size queries, raw byte writes, and resize
// notification. The engine defines what bytes are requested of it, not
// how the syscalls happen.
type Backend interface {
	// Init acquires the device (raw mode on a tty).
	Init() error

	// Fini releases the device. Safe to call multiple times.
	Fini()

	// Size returns current terminal dimensions.
	Size() (width, height int)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}

// backendWriter adapts a Backend to io.Writer for the buffered encoder.
type backendWriter struct {
	b Backend
}

func (bw backendWriter) Write(p []byte) (int, error) {
	if err := bw.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// writerBackend targets a plain io.Writer with a fixed size: headless
// rendering, frame capture, tests. It has no raw mode and never resizes
// on its own.
type writerBackend struct {
	out           io.Writer
	width, height int
}

// NewWriterBackend wraps an arbitrary writer as a fixed-size backend.
func NewWriterBackend(out io.Writer, width, height int) Backend {
	return &writerBackend{out: out, width: width, height: height}
}

func (b *writerBackend) Init() error { return nil }

func (b *writerBackend) Fini() {}

func (b *writerBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *writerBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *writerBackend) SetResizeHandler(func(width, height int)) {}
