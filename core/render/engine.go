package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/ssrkit/core/ssr"
)

// DefaultConcurrency bounds how many deferred boundaries render at once.
const DefaultConcurrency = 4

// Engine renders Pages. It holds no per-render state and is safe for
// concurrent use.
type Engine struct {
	concurrency     int
	boundaryTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency sets how many deferred boundaries render at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithBoundaryTimeout bounds each boundary render. Zero means no limit.
func WithBoundaryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.boundaryTimeout = d
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ssr.Renderer = (*Engine)(nil)

// Start validates rc and begins rendering it in the background.
func (e *Engine) Start(ctx context.Context, rc ssr.RenderContext, cb ssr.Callbacks) (ssr.Stream, error) {
	page, ok := rc.(*Page)
	if !ok || page == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedContext, rc)
	}
	if page.Shell == nil {
		return nil, ErrMissingShell
	}

	seen := make(map[string]struct{}, len(page.Inline)+len(page.Deferred))
	for _, b := range append(append([]Boundary{}, page.Inline...), page.Deferred...) {
		if !validID(b.ID) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidBoundaryID, b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateBoundary, b.ID)
		}
		seen[b.ID] = struct{}{}
	}

	s := &stream{
		engine: e,
		page:   page,
		cb:     cb,
		ready:  make(chan struct{}),
		chunks: make(chan chunk, len(page.Deferred)),
	}
	go s.run(ctx)

	return s, nil
}

// validID reports whether id is non-empty and made of ASCII letters, digits,
// '-', '_', '.' or ':'. Such ids go into attributes and scripts unescaped.
func validID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case c == '-', c == '_', c == '.', c == ':':
		default:
			return false
		}
	}
	return true
}

type chunk struct {
	id   string
	html []byte
	err  error
}

// stream is the state of one render.
type stream struct {
	engine *Engine
	page   *Page
	cb     ssr.Callbacks

	ready    chan struct{}
	shell    []byte
	shellErr error
	chunks   chan chunk
	piped    atomic.Bool
}

func (s *stream) run(ctx context.Context) {
	slots := make(map[string]string, len(s.page.Inline)+len(s.page.Deferred))

	for _, b := range s.page.Inline {
		html, err := s.renderBoundary(ctx, b.Content)
		if err != nil {
			s.cb.OnError(&BoundaryError{ID: b.ID, Err: err})
			html, err = s.renderBoundary(ctx, b.Fallback)
			if err != nil {
				s.failShell(&BoundaryError{ID: b.ID, Err: fmt.Errorf("fallback: %w", err)})
				return
			}
		}
		slots[b.ID] = string(html)
	}

	for _, b := range s.page.Deferred {
		fallback, err := s.renderBoundary(ctx, b.Fallback)
		if err != nil {
			s.failShell(&BoundaryError{ID: b.ID, Err: fmt.Errorf("fallback: %w", err)})
			return
		}
		slots[b.ID] = fmt.Sprintf(`<div id="%s">%s</div>`, placeholderID(b.ID), fallback)
	}

	var buf bytes.Buffer
	if err := safeRender(context.WithValue(ctx, slotsKey{}, slots), s.page.Shell, &buf); err != nil {
		s.failShell(err)
		return
	}
	s.shell = buf.Bytes()

	s.renderDeferred(ctx)

	close(s.ready)
	s.cb.OnShellReady()
}

func (s *stream) failShell(err error) {
	s.shellErr = err
	close(s.ready)
	close(s.chunks)
	s.cb.OnShellError(err)
}

// renderDeferred starts the deferred boundaries. Results are buffered so
// renders finish even if nobody pipes the stream.
func (s *stream) renderDeferred(ctx context.Context) {
	if len(s.page.Deferred) == 0 {
		close(s.chunks)
		return
	}

	g := &errgroup.Group{}
	g.SetLimit(s.engine.concurrency)

	go func() {
		defer close(s.chunks)
		for _, b := range s.page.Deferred {
			g.Go(func() error {
				html, err := s.renderBoundary(ctx, b.Content)
				s.chunks <- chunk{id: b.ID, html: html, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

func (s *stream) renderBoundary(ctx context.Context, c templ.Component) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	if s.engine.boundaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.engine.boundaryTimeout)
		defer cancel()
	}

	var buf bytes.Buffer
	if err := safeRender(ctx, c, &buf); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Pipe writes the shell, each deferred boundary as it completes, and the
// document tail.
func (s *stream) Pipe(w io.Writer) error {
	if !s.piped.CompareAndSwap(false, true) {
		return ErrAlreadyPiped
	}

	<-s.ready
	if s.shellErr != nil {
		return s.shellErr
	}

	if _, err := w.Write(s.shell); err != nil {
		return err
	}

	var once sync.Once
	for c := range s.chunks {
		if c.err != nil {
			s.cb.OnError(&BoundaryError{ID: c.id, Err: c.err})
			continue
		}

		var err error
		once.Do(func() {
			_, err = io.WriteString(w, swapScript)
		})
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<template id="%s">%s</template><script>__ssrSwap(%q)</script>`,
			templateID(c.id), c.html, c.id); err != nil {
			return err
		}
	}

	if s.page.Tail == nil {
		_, err := io.WriteString(w, defaultTail)
		return err
	}
	return safeRender(context.Background(), s.page.Tail, w)
}

func safeRender(ctx context.Context, c templ.Component, w io.Writer) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p, stack: debug.Stack()}
		}
	}()
	return c.Render(ctx, w)
}
