package response

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/ssrkit/core/handler"
	"github.com/dmitrymomot/ssrkit/core/ssr"
	"github.com/dmitrymomot/ssrkit/pkg/async"
)

// documentResponder is implemented by *ssr.Responder.
type documentResponder interface {
	Respond(ctx context.Context, r *http.Request, status int, header http.Header, rc ssr.RenderContext) *async.Future[*ssr.Response]
}

const documentChunkSize = 32 << 10

// Document streams the server-rendered document described by rc. status is
// the proposed status; the responder may raise it to 500.
//
// Headers already set on w are kept; the responder works on a copy that is
// merged back once the shell is ready.
//
// A shell error is returned before anything is written, so the router's error
// handler can still render an error page. Once the status is written, chunks
// are flushed to the client as the renderer produces them.
func Document(rs documentResponder, status int, rc ssr.RenderContext) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		ctx := r.Context()
		// The renderer may still write headers after the request is abandoned,
		// so it gets its own map and w.Header() is only touched here.
		header := w.Header().Clone()
		future := rs.Respond(ctx, r, status, header, rc)

		resp, err := future.Await(ctx)
		if err != nil {
			if ctx.Err() != nil {
				go discard(future)
			}
			return err
		}
		defer resp.Body.Close()

		dst := w.Header()
		for k, v := range resp.Header {
			dst[k] = v
		}
		w.WriteHeader(resp.Status)
		ctrl := http.NewResponseController(w)
		_ = ctrl.Flush()

		if err := copyFlush(w, ctrl, resp.Body); err != nil {
			return fmt.Errorf("document stream: %w", err)
		}
		return nil
	}
}

// discard closes the body of an abandoned response so the render stops.
func discard(future *async.Future[*ssr.Response]) {
	<-future.Done()
	if resp, err := future.Await(context.Background()); err == nil {
		resp.Body.Close()
	}
}

func copyFlush(w io.Writer, ctrl *http.ResponseController, body io.Reader) error {
	buf := make([]byte, documentChunkSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			if ferr := ctrl.Flush(); ferr != nil && !errors.Is(ferr, http.ErrNotSupported) {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
