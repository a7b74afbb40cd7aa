// Package async provides single-assignment futures and helpers for running
// functions concurrently.
//
// A Future is settled exactly once, either resolved with a value or rejected
// with an error. Later attempts to settle it are ignored and reported through
// the boolean result of Resolve and Reject, which makes a Future safe to hand
// to several callbacks that race to decide an outcome.
//
// # Usage
//
//	f := async.NewFuture[string]()
//
//	go func() {
//		f.Resolve("done")
//	}()
//
//	v, err := f.Await(ctx)
//
// Running functions concurrently:
//
//	a := async.Exec(ctx, cfgA, check)
//	b := async.Exec(ctx, cfgB, check)
//	if err := async.ExecAll(a, b); err != nil {
//		return err
//	}
//
// # Error Handling
//
//   - ErrTimeout: returned when AwaitWithTimeout exceeds its duration
package async
