package toktx

import (
	"fmt"
	"strings"
)

// SourcePathError means an in-memory input could not be written to a
// temporary file.
type SourcePathError struct {
	Err error
}

func (e *SourcePathError) Error() string { return "failed to get source path: " + e.Err.Error() }
func (e *SourcePathError) Unwrap() error { return e.Err }

// SpawnError means toktx could not be started, for example because the
// executable does not exist.
type SpawnError struct {
	Err error
}

func (e *SpawnError) Error() string { return "error spawning toktx process: " + e.Err.Error() }
func (e *SpawnError) Unwrap() error { return e.Err }

// ExitStatusError means toktx ran but did not exit successfully.
type ExitStatusError struct {
	// Code is the exit code, or -1 if the process was killed by a signal.
	Code int
	// Status describes the exit, e.g. "exit status 1" or "signal: killed".
	Status string
	// Stderr is everything toktx wrote to standard error.
	Stderr []byte
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exited with status %s: %s", e.Status, e.StderrText())
}

// StderrText decodes Stderr as UTF-8, replacing invalid sequences.
func (e *ExitStatusError) StderrText() string {
	return strings.ToValidUTF8(string(e.Stderr), "\uFFFD")
}
