// Package ssr bridges a streaming rendering engine and an HTTP response.
//
// A Responder starts a render and settles a future with the response as soon
// as the engine reports that the document shell is ready. The response body
// is a pipe the engine keeps writing to after the status and headers have
// been handed to the caller, so the document streams to the client while the
// rest of the page is still rendering.
//
// The engine reports progress through three callbacks:
//
//   - OnShellReady: the shell can be flushed. The future resolves with the
//     caller's status, or 500 when an error was reported before this point.
//   - OnShellError: the shell could not be produced. The future is rejected
//     and no response is produced; the caller renders an error page.
//   - OnError: a recoverable error. After the shell it can no longer change
//     the committed status, so it is only logged.
//
// Usage:
//
//	responder := ssr.New(engine, ssr.WithLogger(log))
//
//	resp, err := responder.Respond(ctx, r, http.StatusOK, w.Header(), page).Await(ctx)
//	if err != nil {
//		return err
//	}
//	defer resp.Body.Close()
//	w.WriteHeader(resp.Status)
//	io.Copy(w, resp.Body)
//
// The responder does not cancel or time out renders; a caller that abandons
// the future should close the body once it arrives so the engine stops.
package ssr
