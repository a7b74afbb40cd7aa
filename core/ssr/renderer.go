package ssr

import (
	"context"
	"io"
)

// RenderContext describes what to render. It is passed to the Renderer
// unmodified.
type RenderContext any

// Callbacks are registered with a Renderer for one render. The engine calls
// exactly one of OnShellReady or OnShellError, once, and OnError zero or
// more times. Callbacks may be invoked from any goroutine, including
// synchronously from Start.
type Callbacks struct {
	OnShellReady func()
	OnShellError func(err error)
	OnError      func(err error)
}

// Stream is the handle returned by a Renderer for one render.
type Stream interface {
	// Pipe writes the rendered document to w and returns when rendering is
	// complete or writing fails. It is called at most once, after
	// OnShellReady.
	Pipe(w io.Writer) error
}

// Renderer is a streaming rendering engine.
type Renderer interface {
	Start(ctx context.Context, rc RenderContext, cb Callbacks) (Stream, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, rc RenderContext, cb Callbacks) (Stream, error)

// Start calls f.
func (f RendererFunc) Start(ctx context.Context, rc RenderContext, cb Callbacks) (Stream, error) {
	return f(ctx, rc, cb)
}

// StreamFunc adapts a function to the Stream interface.
type StreamFunc func(w io.Writer) error

// Pipe calls f.
func (f StreamFunc) Pipe(w io.Writer) error {
	return f(w)
}
