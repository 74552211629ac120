package executor

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// Backend executes a Command on the calling goroutine.
type Backend interface {
	Output(ctx context.Context, cmd *Command) (*Result, error)
}

// AsyncBackend starts a Command and returns immediately. The returned
// Future resolves once the process has exited and its output is collected.
type AsyncBackend interface {
	Start(ctx context.Context, cmd *Command) *Future[*Result]
}

// Blocking is the default Backend.
type Blocking struct{}

// Output runs cmd and waits for it to exit.
func (Blocking) Output(ctx context.Context, cmd *Command) (*Result, error) {
	return run(ctx, cmd)
}

// Goroutine runs every Command on a fresh goroutine.
type Goroutine struct{}

// Start runs cmd in the background.
func (Goroutine) Start(ctx context.Context, cmd *Command) *Future[*Result] {
	f := newFuture[*Result]()
	go func() {
		f.resolve(run(ctx, cmd))
	}()
	return f
}

// Pool bounds the number of processes running at once. It is both a Backend
// and an AsyncBackend; Output simply waits on Start.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool returns a Pool running at most size processes concurrently. A
// size below one means runtime.NumCPU().
func NewPool(size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the concurrency limit.
func (p *Pool) Size() int { return p.size }

// Start queues cmd. If ctx is cancelled while waiting for a slot the Future
// resolves with the context error and the process is never started.
func (p *Pool) Start(ctx context.Context, cmd *Command) *Future[*Result] {
	f := newFuture[*Result]()
	go func() {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			f.resolve(unstarted(err))
			return
		}
		defer p.sem.Release(1)
		f.resolve(run(ctx, cmd))
	}()
	return f
}

// Output queues cmd and waits for it.
func (p *Pool) Output(ctx context.Context, cmd *Command) (*Result, error) {
	return p.Start(ctx, cmd).Wait()
}
