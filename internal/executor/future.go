package executor

import "context"

// Future is a value that becomes available once a background operation
// finishes. It resolves exactly once.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) {
	f.val, f.err = v, err
	close(f.done)
}

// Resolved returns a Future that is already complete.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.resolve(v, err)
	return f
}

// Done is closed when the Future resolves.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Wait blocks until the Future resolves.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Await blocks until the Future resolves or ctx is done. Giving up on a
// Future does not stop the work behind it; cancel the context the work was
// started with for that.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then returns a Future resolved with fn applied to f's outcome. fn runs on
// its own goroutine once f resolves.
func Then[T, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	out := newFuture[U]()
	go func() {
		out.resolve(fn(f.Wait()))
	}()
	return out
}
