// Package terminal is the drawing façade over the screen model: it
// tracks the logical cursor, wraps text, scopes the alternate buffer and
// raw mode, and encodes the screen diff into direct ANSI sequences.
//
// Features:
//   - True color, 256-color, 16-color, and greyscale output
//   - Double-buffered rendering with cell-level diffing
//   - SIGWINCH resize detection
//   - Scoped alternate-buffer acquisition with unconditional restore
//   - Clean terminal restoration on exit/panic
//
// The package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with
// xterm-compatible terminals.
//
// All mutation of one Terminal must originate from a single goroutine;
// no internal locking is provided beyond lifecycle guards.
package terminal
