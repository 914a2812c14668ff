//go:build unix

package terminal

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNotTerminal reports that the output target is not a tty.
var ErrNotTerminal = errors.New("output is not a terminal")

type unixBackend struct {
	out     *os.File
	outFd   int
	oldTerm *term.State

	handler func(width, height int)
	sigCh   chan os.Signal
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func newBackend() Backend {
	return &unixBackend{
		out:   os.Stdout,
		outFd: int(os.Stdout.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.outFd) {
		return ErrNotTerminal
	}

	old, err := term.MakeRaw(b.outFd)
	if err != nil {
		return err
	}
	b.oldTerm = old

	b.sigCh = make(chan os.Signal, 1)
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	signal.Notify(b.sigCh, syscall.SIGWINCH)
	go b.watchResize()

	return nil
}

func (b *unixBackend) Fini() {
	if b.stopCh != nil {
		signal.Stop(b.sigCh)
		close(b.stopCh)
		<-b.doneCh
		b.stopCh = nil
	}
	if b.oldTerm != nil {
		term.Restore(b.outFd, b.oldTerm)
		b.oldTerm = nil
	}
}

func (b *unixBackend) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

func (b *unixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

func (b *unixBackend) SetResizeHandler(handler func(width, height int)) {
	b.handler = handler
}

// watchResize forwards SIGWINCH to the registered handler.
func (b *unixBackend) watchResize() {
	defer close(b.doneCh)
	for {
		select {
		case <-b.stopCh:
			return
		case <-b.sigCh:
			if b.handler == nil {
				continue
			}
			if w, h := b.Size(); w > 0 && h > 0 {
				b.handler(w, h)
			}
		}
	}
}

// EmergencyReset force-restores the terminal without a Terminal handle.
// For crash handlers and signal paths where normal Fini cannot run.
// Writes the reset sequences to w (typically os.Stderr) and restores
// cooked mode on the controlling tty.
func EmergencyReset(w io.Writer) {
	w.Write(csiSyncEnd)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiCursorShow)
	w.Write(csiRIS)
	resetTerminalMode()
}

// resetTerminalMode attempts to restore cooked mode via /dev/tty.
// Best-effort for crash recovery; errors ignored.
func resetTerminalMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, unix.TCGETS); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, unix.TCSETS, termios)
	}
}
