package ssr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/ssrkit/core/logger"
	"github.com/dmitrymomot/ssrkit/pkg/async"
)

// DefaultContentType is set on responses produced by the Responder.
const DefaultContentType = "text/html; charset=utf-8"

// Response is the result of a successful shell render. Body streams the
// rest of the document and must be closed by the consumer.
type Response struct {
	Status int
	Header http.Header
	Body   io.ReadCloser
}

// Responder turns renders into streamed HTTP responses.
// A Responder holds no per-request state and is safe for concurrent use.
type Responder struct {
	renderer    Renderer
	logger      *slog.Logger
	contentType string
}

// New creates a Responder for renderer.
func New(renderer Renderer, opts ...Option) *Responder {
	r := &Responder{
		renderer:    renderer,
		logger:      logger.Nop(),
		contentType: DefaultContentType,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond renders rc and returns a future that settles exactly once: with a
// Response when the shell is ready, or with the shell error. header belongs
// to the caller and gets its Content-Type set before the future resolves.
func (rs *Responder) Respond(ctx context.Context, r *http.Request, status int, header http.Header, rc RenderContext) *async.Future[*Response] {
	result := async.NewFuture[*Response]()
	pr, pw := io.Pipe()
	log := rs.logger.With(logger.Component("ssr"), logger.URL(requestURL(r)))

	var errored atomic.Bool
	// The engine may report shell-ready before Start returns its stream.
	streams := make(chan Stream, 1)

	cb := Callbacks{
		OnShellReady: func() {
			header.Set("Content-Type", rs.contentType)

			code := status
			if errored.Load() {
				code = http.StatusInternalServerError
			}

			if !result.Resolve(&Response{Status: code, Header: header, Body: pr}) {
				return
			}

			go func() {
				stream, ok := <-streams
				if !ok {
					pw.CloseWithError(ErrNoStream)
					return
				}
				if err := stream.Pipe(pw); err != nil {
					if !errors.Is(err, io.ErrClosedPipe) {
						log.WarnContext(ctx, "document stream aborted", logger.Event("stream_error"), logger.Error(err))
					}
					pw.CloseWithError(err)
					return
				}
				pw.Close()
			}()
		},
		OnShellError: func(err error) {
			log.ErrorContext(ctx, "document shell render failed",
				logger.Event("shell_error"), logger.Error(err), logger.ErrorStack(err))
			if result.Reject(err) {
				pw.CloseWithError(err)
			}
		},
		OnError: func(err error) {
			errored.Store(true)
			log.ErrorContext(ctx, "document render error",
				logger.Event("render_error"), logger.Error(err), logger.ErrorStack(err))
		},
	}

	stream, err := rs.renderer.Start(ctx, rc, cb)
	if err != nil {
		close(streams)
		log.ErrorContext(ctx, "document render could not start", logger.Event("start_error"), logger.Error(err))
		if result.Reject(err) {
			pw.CloseWithError(err)
		}
		return result
	}
	if stream == nil {
		close(streams)
	} else {
		streams <- stream
	}

	return result
}

func requestURL(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.String()
}
