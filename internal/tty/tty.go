package tty

import (
	"os"

	"github.com/mattn/go-isatty"
)

// isInteractive stores whether stdout is connected to a terminal.
// This is checked once at package initialization to avoid repeated syscalls.
var isInteractive bool

func init() {
	isInteractive = IsTerminal(os.Stdout)
}

// IsInteractive returns whether stdout is connected to a terminal.
// Returns false if output is redirected, piped, or in a non-interactive environment.
func IsInteractive() bool {
	return isInteractive
}

// IsTerminal reports whether f is a terminal, including Cygwin/MSYS ptys.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
