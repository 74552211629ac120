// Package executor runs external commands for ktx behind one small contract
// that blocking and non-blocking callers share.
//
// A Command accumulates a program, an ordered argument list and an output
// mode. Backends turn a Command into a Result:
//
//	cmd := executor.NewCommand("toktx")
//	cmd.AddArg("--t2")
//	cmd.AddArg("-")
//	cmd.AddArg("in.png")
//
//	// Blocking: the calling goroutine waits for the process.
//	result, err := executor.Blocking{}.Output(ctx, cmd)
//
//	// Non-blocking: a Future resolved by a background goroutine.
//	future := executor.Goroutine{}.Start(ctx, cmd)
//	result, err = future.Wait()
//
//	// Bounded: at most n processes run at once.
//	pool := executor.NewPool(4)
//	result, err = pool.Start(ctx, cmd).Wait()
//
// # Stdio
//
// Standard input is always the null device. Standard error is always
// captured. Standard output is captured with OutputModeCapture or discarded
// with OutputModeDiscard.
//
// # Cancellation
//
// Every backend starts the process with exec.CommandContext, so cancelling
// the context kills the child regardless of the backend. A Future whose
// context is never cancelled runs its process to completion even if nobody
// waits on it.
//
// # Errors
//
// Backends return the Result together with the error from os/exec. When the
// process could not be started Result.Exited is false and ExitCode is -1.
// When it ran and failed Result.Exited is true and the error is an
// *exec.ExitError (or the mock's equivalent).
//
// # Testing
//
// MockBackend implements both Backend and AsyncBackend and records every
// Command it receives:
//
//	mock := executor.NewMockBackend()
//	mock.WithMockResult(&executor.Result{Exited: true, Stdout: []byte("KTX")}, nil)
//	conv.ToMemoryWith(ctx, mock)
//	mock.LastCall().Command.Args
//
// # Thread Safety
//
// Commands are not safe for concurrent mutation, but a finished Command may be
// executed by several goroutines at once. Blocking and Goroutine are
// stateless; Pool and MockBackend are safe for concurrent use.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// OutputMode defines what happens to the child's standard output.
type OutputMode int

const (
	// OutputModeCapture collects stdout into Result.Stdout. Use it when the
	// program writes its product to stdout.
	OutputModeCapture OutputMode = iota

	// OutputModeDiscard sends stdout to the null device. Use it when the
	// program writes its product to a file named on the command line.
	OutputModeDiscard
)

func (m OutputMode) String() string {
	switch m {
	case OutputModeCapture:
		return "capture"
	case OutputModeDiscard:
		return "discard"
	}
	return fmt.Sprintf("OutputMode(%d)", int(m))
}

// Command is a per-invocation builder holding the program, its arguments in
// insertion order, and the stdout mode.
type Command struct {
	// Program is a bare name resolved via PATH, or a path.
	Program string

	// Args excludes the program name.
	Args []string

	// OutputMode defaults to OutputModeCapture.
	OutputMode OutputMode
}

// Option configures a Command at construction time.
//
// Example:
//
//	cmd := executor.NewCommand("toktx",
//	    executor.WithArgs("--version"),
//	    executor.WithOutputMode(executor.OutputModeCapture))
type Option func(*Command)

// WithArgs appends args to the command's argument list.
func WithArgs(args ...string) Option {
	return func(c *Command) {
		c.Args = append(c.Args, args...)
	}
}

// WithOutputMode sets how stdout is handled.
func WithOutputMode(mode OutputMode) Option {
	return func(c *Command) {
		c.OutputMode = mode
	}
}

// NewCommand creates a Command for program with the given options applied
// in order.
func NewCommand(program string, options ...Option) *Command {
	c := &Command{Program: program}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// AddArg appends one argument token. It makes *Command usable wherever an
// argument consumer is expected.
func (c *Command) AddArg(arg string) {
	c.Args = append(c.Args, arg)
}

// SetOutputMode sets how stdout is handled and returns c for chaining.
func (c *Command) SetOutputMode(mode OutputMode) *Command {
	c.OutputMode = mode
	return c
}

// Argv returns the program followed by its arguments.
func (c *Command) Argv() []string {
	return append([]string{c.Program}, c.Args...)
}

// String renders the command line for logs. Arguments containing spaces
// are quoted.
func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, a := range c.Argv() {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Result contains what a finished (or unstartable) process produced.
type Result struct {
	// Stdout holds captured standard output. Always empty with
	// OutputModeDiscard.
	Stdout []byte

	// Stderr holds captured standard error. Always populated when the
	// process ran.
	Stderr []byte

	// Exited reports whether the process was started and terminated.
	// When false, Error explains why it never ran.
	Exited bool

	// ExitCode is the process exit code. It is -1 when the process never
	// started or was terminated by a signal.
	ExitCode int

	// Status is the platform description of the exit status, such as
	// "exit status 2" or "signal: killed". Empty when Exited is false.
	Status string

	// Error is the error returned alongside the Result, if any.
	Error error
}

// Success reports whether the process ran and exited with status zero.
func (r *Result) Success() bool {
	return r.Exited && r.ExitCode == 0 && r.Error == nil
}

// FormatError creates a detailed error from the Result including the exit
// code and any stderr output, or nil if the command succeeded.
//
// Example:
//
//	cmd := executor.NewCommand("toktx", executor.WithArgs("--version"))
//	result, err := executor.Blocking{}.Output(ctx, cmd)
//	if err != nil {
//	    return result.FormatError("probing toktx")
//	}
func (r *Result) FormatError(commandDescription string) error {
	if r.Error == nil {
		return nil
	}

	var parts []string
	if commandDescription != "" {
		parts = append(parts, fmt.Sprintf("command failed: %s", commandDescription))
	}
	if r.ExitCode >= 0 {
		parts = append(parts, fmt.Sprintf("exit code: %d", r.ExitCode))
	}
	if len(r.Stderr) > 0 {
		parts = append(parts, fmt.Sprintf("stderr:\n%s", strings.TrimRight(string(r.Stderr), "\n")))
	}

	if len(parts) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(parts, ", "), r.Error)
	}
	return r.Error
}

// String returns a summary of the Result without dumping its buffers.
//
// Example Output:
//
//	"ExitCode: 0, Stdout: 2048 bytes"
//	"ExitCode: 1, Stderr: 512 bytes, Error: exit status 1"
func (r *Result) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("ExitCode: %d", r.ExitCode))
	if len(r.Stdout) > 0 {
		parts = append(parts, fmt.Sprintf("Stdout: %d bytes", len(r.Stdout)))
	}
	if len(r.Stderr) > 0 {
		parts = append(parts, fmt.Sprintf("Stderr: %d bytes", len(r.Stderr)))
	}
	if r.Error != nil {
		parts = append(parts, fmt.Sprintf("Error: %v", r.Error))
	}
	return strings.Join(parts, ", ")
}

const waitDelay = 2 * time.Second

// run is the single execution path shared by every backend, so their
// observable behavior cannot drift apart.
func run(ctx context.Context, c *Command) (*Result, error) {
	if ctx == nil {
		return unstarted(fmt.Errorf("context is required"))
	}
	if c.Program == "" {
		return unstarted(fmt.Errorf("command is required"))
	}

	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	// Grandchildren holding stderr open must not stall Wait after a kill.
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	// Stdin stays nil, which os/exec connects to the null device.
	switch c.OutputMode {
	case OutputModeCapture:
		cmd.Stdout = &stdoutBuf
	case OutputModeDiscard:
		// nil Stdout is the null device as well.
	default:
		return unstarted(fmt.Errorf("unknown output mode %s", c.OutputMode))
	}
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	result := &Result{
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.Bytes(),
		ExitCode: -1,
		Error:    err,
	}
	if cmd.ProcessState != nil {
		result.Exited = true
		result.ExitCode = cmd.ProcessState.ExitCode()
		result.Status = cmd.ProcessState.String()
	}
	return result, err
}

func unstarted(err error) (*Result, error) {
	return &Result{ExitCode: -1, Error: err}, err
}
