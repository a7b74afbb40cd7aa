package async

import (
	"context"
)

// Exec runs fn with param in a new goroutine and returns a future that
// settles with fn's error. A context that is already canceled short-circuits
// the call and rejects the future with ctx.Err().
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *Future[struct{}] {
	f := NewFuture[struct{}]()

	go func() {
		if err := ctx.Err(); err != nil {
			f.Reject(err)
			return
		}

		if err := fn(ctx, param); err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(struct{}{})
	}()

	return f
}

// ExecAll waits for every future and returns the first error in argument order.
func ExecAll(futures ...*Future[struct{}]) error {
	var first error
	for _, future := range futures {
		if _, err := future.Await(context.Background()); err != nil && first == nil {
			first = err
		}
	}
	return first
}
