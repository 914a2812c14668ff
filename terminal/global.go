package terminal

import (
	"os"
	"sync"
)

var (
	defaultOnce sync.Once
	defaultTerm *Terminal
)

// Default returns the process-wide Terminal, constructing it on first
// use with detected capability and the tty backend. Init is still the
// caller's responsibility.
func Default() *Terminal {
	defaultOnce.Do(func() {
		defaultTerm = New()
	})
	return defaultTerm
}

// RestoreAll tears down the default terminal if one was created. No-op
// when Default was never used, so it is safe in shared cleanup paths.
func RestoreAll() {
	if defaultTerm != nil {
		defaultTerm.Fini()
	}
}

// Panicking restores the terminal and re-raises. Use as
// defer terminal.Panicking() in programs driving the default terminal
// so panics surface on a usable screen.
func Panicking() {
	if r := recover(); r != nil {
		EmergencyReset(os.Stderr)
		panic(r)
	}
}
