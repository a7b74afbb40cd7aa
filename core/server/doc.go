// Package server runs an http.Handler with graceful shutdown.
//
// Streamed documents keep the connection open until the last deferred
// boundary has been written, so WriteTimeout must cover the slowest page,
// not just the shell. Set it to zero to disable it.
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, app))
//	return g.Wait()
//
// Run starts the server and shuts it down when ctx is canceled, waiting up
// to the shutdown timeout for in-flight responses to finish.
package server
