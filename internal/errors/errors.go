package errors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/saltyorg/ktx/internal/signals"
	"github.com/saltyorg/ktx/toktx"
)

// Exit codes returned by the CLI besides the tool's own.
const (
	ExitFailure  = 1
	ExitNotFound = 127
)

// Shutdowner is the part of signals.Manager used here.
type Shutdowner interface {
	Shutdown(exitCode int)
}

// IsInterruptError checks if an error is due to user interrupt (Ctrl+C).
// It detects context cancellation and signal-based termination of a child.
func IsInterruptError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, signals.ErrShutdown) {
		return true
	}
	var exitErr *toktx.ExitStatusError
	if errors.As(err, &exitErr) {
		return exitErr.Status == "signal: killed" || exitErr.Status == "signal: interrupt"
	}
	return strings.Contains(err.Error(), "signal: killed") ||
		strings.Contains(err.Error(), "signal: interrupt")
}

// HandleInterruptError triggers shutdown on the global signal manager if err
// is an interrupt. It returns true if shutdown was initiated.
func HandleInterruptError(err error) bool {
	return HandleInterruptErrorWith(signals.GetGlobalManager(), err)
}

// HandleInterruptErrorWith is HandleInterruptError with an explicit manager.
func HandleInterruptErrorWith(m Shutdowner, err error) bool {
	if !IsInterruptError(err) {
		return false
	}
	m.Shutdown(signals.ExitInterrupt)
	return true
}

// ExitCode maps an error returned by a command to the process exit code.
// A toktx failure passes the tool's own code through, a toktx that could not
// be started yields 127 like a shell would, and everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *toktx.ExitStatusError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	var spawnErr *toktx.SpawnError
	if errors.As(err, &spawnErr) && !IsInterruptError(err) {
		return ExitNotFound
	}
	if IsInterruptError(err) {
		return signals.ExitInterrupt
	}
	return ExitFailure
}

// ExitWithError prints an error message to w and triggers shutdown with
// exit code 1 so deferred cleanup still runs.
func ExitWithError(m Shutdowner, w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
	m.Shutdown(ExitFailure)
}
