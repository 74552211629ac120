package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	out       io.Writer = os.Stderr
	verbosity int
)

// SetVerbosity sets the global verbosity level. It is called once from the
// persistent -v flag before any command runs.
func SetVerbosity(level int) {
	mu.Lock()
	defer mu.Unlock()
	verbosity = level
}

// Verbosity returns the current verbosity level.
func Verbosity() int {
	mu.Lock()
	defer mu.Unlock()
	return verbosity
}

// SetOutput redirects log output and returns the previous writer. Output
// defaults to stderr because stdout may carry texture bytes.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Debug prints a debug message with the DEBUG prefix if verbosity level is greater than 0.
//
// Usage:
//
//	logging.Debug("Loaded %d profiles from %s", len(cfg.Profiles), path)
func Debug(format string, args ...any) {
	logAt(1, "DEBUG", format, args...)
}

// Trace prints a trace message with the TRACE prefix if verbosity level is greater than 1.
// Trace messages typically include full argument vectors and raw tool output.
//
// Usage:
//
//	logging.Trace("argv: %q", argv)
func Trace(format string, args ...any) {
	logAt(2, "TRACE", format, args...)
}

func logAt(level int, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbosity < level {
		return
	}
	fmt.Fprintf(out, "%s: %s\n", prefix, fmt.Sprintf(format, args...))
}
