package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/ssrkit/core/handler"
)

var allowedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// mux is the Router implementation. Inline routers created by With and Group
// share the root's ServeMux and only carry their own middleware.
type mux[C handler.Context] struct {
	serveMux     *http.ServeMux
	routes       *[]Route
	notFound     *handler.HandlerFunc[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request) C
	logger       *slog.Logger
	parent       *mux[C]
	inline       bool
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		serveMux:     http.NewServeMux(),
		routes:       new([]Route),
		notFound:     new(handler.HandlerFunc[C]),
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		var zero C
		if _, ok := any(zero).(*Context); !ok {
			panic(ErrNoContextFactory)
		}
		m.newContext = func(w http.ResponseWriter, r *http.Request) C {
			return any(NewContext(w, r)).(C)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	root := m.root()
	ww := newResponseWriter(w)

	if _, pattern := root.serveMux.Handler(r); pattern == "" {
		fn := *root.notFound
		if fn == nil {
			fn = notFoundHandler[C]
		}
		root.serve(ww, r, fn)
		return
	}

	root.serveMux.ServeHTTP(ww, r)
}

func notFoundHandler[C handler.Context](C) handler.Response {
	return func(http.ResponseWriter, *http.Request) error {
		return ErrNotFound
	}
}

// serve runs fn with the router middleware and renders its response.
func (m *mux[C]) serve(w http.ResponseWriter, r *http.Request, fn handler.HandlerFunc[C]) {
	ww, ok := w.(*responseWriter)
	if !ok {
		ww = newResponseWriter(w)
	}
	ctx := m.newContext(ww, r)

	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	if len(m.middlewares) > 0 {
		fn = handler.Chain(fn, m.middlewares...)
	}

	response := fn(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, ctx.Request()); err != nil {
		m.errorHandler(ctx, err)
	}
}

func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodHead, pattern, h)
}

func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if _, ok := allowedMethods[method]; !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware. It panics once routes have been registered.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline router whose routes also run middlewares.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		serveMux:     m.serveMux,
		routes:       m.routes,
		notFound:     m.notFound,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		parent:       m,
		inline:       true,
	}
}

// Group calls fn with a new inline router.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

func (m *mux[C]) NotFound(h handler.HandlerFunc[C]) {
	if h == nil {
		return
	}
	if m.inline {
		h = handler.Chain(h, m.inlineMiddlewares()...)
	}
	*m.notFound = h
}

func (m *mux[C]) Routes() []Route {
	routes := make([]Route, len(*m.routes))
	copy(routes, *m.routes)
	return routes
}

func (m *mux[C]) root() *mux[C] {
	r := m
	for r.inline && r.parent != nil {
		r = r.parent
	}
	return r
}

// inlineMiddlewares collects middleware from the inline chain, outermost first.
// Root middleware is applied at serve time instead.
func (m *mux[C]) inlineMiddlewares() []handler.Middleware[C] {
	var all []handler.Middleware[C]
	for curr := m; curr != nil && curr.inline; curr = curr.parent {
		all = append(append([]handler.Middleware[C]{}, curr.middlewares...), all...)
	}
	return all
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	muxPattern, err := translatePattern(pattern)
	if err != nil {
		panic(err)
	}

	m.hasRoutes = true
	root := m.root()
	root.hasRoutes = true

	h := fn
	if m.inline {
		if mws := m.inlineMiddlewares(); len(mws) > 0 {
			h = handler.Chain(fn, mws...)
		}
	}

	if method != "" {
		muxPattern = method + " " + muxPattern
	}

	m.serveMux.HandleFunc(muxPattern, func(w http.ResponseWriter, r *http.Request) {
		root.serve(w, r, h)
	})

	*m.routes = append(*m.routes, Route{Method: method, Pattern: pattern})
}

// translatePattern converts router patterns to ServeMux patterns: a trailing
// "/*" matches a subtree, any other pattern matches exactly.
func translatePattern(pattern string) (string, error) {
	if pattern == "" || pattern[0] != '/' {
		return "", fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	switch {
	case strings.HasSuffix(pattern, "/*"):
		return pattern[:len(pattern)-1], nil
	case strings.HasSuffix(pattern, "/"):
		return pattern + "{$}", nil
	default:
		return pattern, nil
	}
}
