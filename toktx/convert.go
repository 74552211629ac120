package toktx

import (
	"context"
	"errors"
	"os"

	"github.com/saltyorg/ktx/internal/executor"
)

// Execution backends. Blocking is used when none is given.
type (
	Backend       = executor.Backend
	AsyncBackend  = executor.AsyncBackend
	Blocking      = executor.Blocking
	Goroutine     = executor.Goroutine
	Pool          = executor.Pool
	Future[T any] = executor.Future[T]
)

// NewPool returns a backend running at most size conversions at once.
func NewPool(size int) *Pool { return executor.NewPool(size) }

// Conversion is one input bound to a configuration, ready to be sent to a
// destination. It is a small value and may be copied; each destination call
// builds and runs its own command.
type Conversion struct {
	config     *ToKtx
	source     InputSource
	removeTemp bool
}

// Convert binds src to t. Nothing runs until a destination method is called.
func (t *ToKtx) Convert(src InputSource) Conversion {
	return Conversion{config: t, source: src}
}

// RemoveTemp returns a copy of c that deletes any temporary input file once
// toktx has exited. By default such files are left in os.TempDir().
func (c Conversion) RemoveTemp() Conversion {
	c.removeTemp = true
	return c
}

// ToMemory runs toktx on the calling goroutine and returns what it wrote to
// stdout.
func (c Conversion) ToMemory(ctx context.Context) ([]byte, error) {
	return c.ToMemoryWith(ctx, Blocking{})
}

// ToMemoryWith is ToMemory using backend b.
func (c Conversion) ToMemoryWith(ctx context.Context, b Backend) ([]byte, error) {
	return c.execute(ctx, b, Stdout, executor.OutputModeCapture)
}

// ToPath runs toktx on the calling goroutine and has it write path.
func (c Conversion) ToPath(ctx context.Context, path string) error {
	return c.ToPathWith(ctx, Blocking{}, path)
}

// ToPathWith is ToPath using backend b.
func (c Conversion) ToPathWith(ctx context.Context, b Backend, path string) error {
	_, err := c.execute(ctx, b, path, executor.OutputModeDiscard)
	return err
}

// Argv returns the full command line, program first, that would write to
// dest ("-" for stdout). Memory-backed inputs are written to temporary files
// that the returned command line refers to, so they are kept even when
// RemoveTemp is set. The caller owns them.
func (c Conversion) Argv(dest string) ([]string, error) {
	cmd, err := c.build(dest, executor.OutputModeCapture)
	if err != nil {
		return nil, err
	}
	return cmd.Argv(), nil
}

// Future switches c to the non-blocking backend b.
func (c Conversion) Future(b AsyncBackend) AsyncConversion {
	return AsyncConversion{conv: c, backend: b}
}

// AsyncConversion is a Conversion bound to an AsyncBackend. The command,
// including any temporary input file, is built on the calling goroutine;
// only the process runs in the background.
type AsyncConversion struct {
	conv    Conversion
	backend AsyncBackend
}

// ToMemory starts toktx writing to stdout.
func (a AsyncConversion) ToMemory(ctx context.Context) *Future[[]byte] {
	return a.start(ctx, Stdout, executor.OutputModeCapture)
}

// ToPath starts toktx writing path.
func (a AsyncConversion) ToPath(ctx context.Context, path string) *Future[struct{}] {
	return executor.Then(a.start(ctx, path, executor.OutputModeDiscard), func(_ []byte, err error) (struct{}, error) {
		return struct{}{}, err
	})
}

func (a AsyncConversion) start(ctx context.Context, dest string, mode executor.OutputMode) *Future[[]byte] {
	cmd, err := a.conv.build(dest, mode)
	if err != nil {
		return executor.Resolved[[]byte](nil, err)
	}
	return executor.Then(a.backend.Start(ctx, cmd.Command), func(res *executor.Result, err error) ([]byte, error) {
		a.conv.cleanup(cmd)
		return mapResult(res, err)
	})
}

// command is the executor command plus the temporary files written while
// building it.
type command struct {
	*executor.Command
	temps []string
}

func (c *command) RecordTemp(path string) {
	c.temps = append(c.temps, path)
}

// build renders `<options...> <dest> <inputs...>`. The destination must sit
// between the options and the inputs since toktx reads them positionally.
func (c Conversion) build(dest string, mode executor.OutputMode) (*command, error) {
	cmd := &command{Command: executor.NewCommand(c.config.Program(), executor.WithOutputMode(mode))}
	c.config.AddArgsTo(cmd)
	cmd.AddArg(dest)
	if err := c.source.AddArgsTo(cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c Conversion) execute(ctx context.Context, b Backend, dest string, mode executor.OutputMode) ([]byte, error) {
	cmd, err := c.build(dest, mode)
	if err != nil {
		return nil, err
	}
	defer c.cleanup(cmd)
	return mapResult(b.Output(ctx, cmd.Command))
}

func (c Conversion) cleanup(cmd *command) {
	if !c.removeTemp {
		return
	}
	for _, path := range cmd.temps {
		_ = os.Remove(path)
	}
}

var errNotStarted = errors.New("process was not started")

func mapResult(res *executor.Result, err error) ([]byte, error) {
	if res == nil || !res.Exited {
		if err == nil {
			err = errNotStarted
		}
		return nil, &SpawnError{Err: err}
	}
	if err != nil || res.ExitCode != 0 {
		return nil, &ExitStatusError{Code: res.ExitCode, Status: res.Status, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}
