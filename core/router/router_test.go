package router_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/core/handler"
	"github.com/dmitrymomot/ssrkit/core/router"
)

func text(s string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/plain")
		_, err := w.Write([]byte(s))
		return err
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_MethodRouting(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/items", func(ctx *router.Context) handler.Response { return text("list") })
	r.Post("/items", func(ctx *router.Context) handler.Response { return text("create") })
	r.Method("/items", func(ctx *router.Context) handler.Response { return text("replace") }, "put", "PUT")

	assert.Equal(t, "list", serve(t, r, http.MethodGet, "/items").Body.String())
	assert.Equal(t, "create", serve(t, r, http.MethodPost, "/items").Body.String())
	assert.Equal(t, "replace", serve(t, r, http.MethodPut, "/items").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodDelete, "/items").Code)
}

func TestRouter_Patterns(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/", func(ctx *router.Context) handler.Response { return text("home") })
	r.Get("/articles/{slug}", func(ctx *router.Context) handler.Response {
		return text("article:" + ctx.Param("slug"))
	})
	r.Get("/static/*", func(ctx *router.Context) handler.Response {
		return text("static:" + ctx.Request().URL.Path)
	})

	assert.Equal(t, "home", serve(t, r, http.MethodGet, "/").Body.String())
	assert.Equal(t, "article:hello", serve(t, r, http.MethodGet, "/articles/hello").Body.String())
	assert.Equal(t, "static:/static/css/app.css", serve(t, r, http.MethodGet, "/static/css/app.css").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(t, r, http.MethodGet, "/missing").Code)
}

func TestRouter_InvalidRegistration(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	assert.Panics(t, func() { r.Get("no-slash", nil) })
	assert.Panics(t, func() { r.Method("/x", nil) })
	assert.Panics(t, func() { r.Method("/x", nil, "BREW") })
}

func TestRouter_Middleware(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) handler.Middleware[*router.Context] {
		return func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
			return func(ctx *router.Context) handler.Response {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	r := router.New[*router.Context]()
	r.Use(mw("root"))
	r.Group(func(g router.Router[*router.Context]) {
		g.Use(mw("group"))
		g.With(mw("inline")).Get("/deep", func(ctx *router.Context) handler.Response {
			order = append(order, "handler")
			return text("ok")
		})
	})

	rec := serve(t, r, http.MethodGet, "/deep")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"root", "group", "inline", "handler"}, order)

	assert.Panics(t, func() { r.Use(mw("late")) })
}

type ctxKey struct{}

func TestRouter_SetValue(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(func(next handler.HandlerFunc[*router.Context]) handler.HandlerFunc[*router.Context] {
		return func(ctx *router.Context) handler.Response {
			ctx.SetValue(ctxKey{}, "value")
			return next(ctx)
		}
	})
	r.Get("/", func(ctx *router.Context) handler.Response {
		v, _ := ctx.Value(ctxKey{}).(string)
		return func(w http.ResponseWriter, req *http.Request) error {
			fromReq, _ := req.Context().Value(ctxKey{}).(string)
			_, err := w.Write([]byte(v + "/" + fromReq))
			return err
		}
	})

	assert.Equal(t, "value/value", serve(t, r, http.MethodGet, "/").Body.String())
}

type teapotErr struct{}

func (teapotErr) Error() string   { return "short and stout" }
func (teapotErr) StatusCode() int { return http.StatusTeapot }

func TestRouter_ErrorHandling(t *testing.T) {
	t.Parallel()

	t.Run("status_from_error", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/", func(ctx *router.Context) handler.Response {
			return func(http.ResponseWriter, *http.Request) error { return teapotErr{} }
		})

		rec := serve(t, r, http.MethodGet, "/")
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Contains(t, rec.Body.String(), "short and stout")
	})

	t.Run("nil_response", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](router.WithErrorHandler(func(ctx *router.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusInternalServerError)
		}))
		r.Get("/", func(ctx *router.Context) handler.Response { return nil })

		rec := serve(t, r, http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.ErrorIs(t, got, router.ErrNilResponse)
	})

	t.Run("panic_recovered", func(t *testing.T) {
		t.Parallel()

		var got error
		r := router.New[*router.Context](router.WithErrorHandler(func(ctx *router.Context, err error) {
			got = err
			http.Error(ctx.ResponseWriter(), "recovered", http.StatusInternalServerError)
		}))
		r.Get("/", func(ctx *router.Context) handler.Response {
			panic(errors.New("kaboom"))
		})

		rec := serve(t, r, http.MethodGet, "/")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var pe router.PanicError
		require.ErrorAs(t, got, &pe)
		assert.Equal(t, "kaboom", pe.Value().(error).Error())
		assert.NotEmpty(t, pe.Stack())
		assert.True(t, strings.Contains(got.Error(), "kaboom"))
	})

	t.Run("panic_after_write_keeps_status", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		r.Get("/", func(ctx *router.Context) handler.Response {
			return func(w http.ResponseWriter, req *http.Request) error {
				w.WriteHeader(http.StatusAccepted)
				panic("late")
			}
		})

		rec := serve(t, r, http.MethodGet, "/")
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}

func TestRouter_NotFound(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.NotFound(func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, req *http.Request) error {
			w.WriteHeader(http.StatusNotFound)
			_, err := w.Write([]byte("custom: " + req.URL.Path))
			return err
		}
	})

	rec := serve(t, r, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "custom: /nope", rec.Body.String())
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/a", func(*router.Context) handler.Response { return text("a") })
	r.Group(func(g router.Router[*router.Context]) {
		g.Handle("/b", func(*router.Context) handler.Response { return text("b") })
	})

	assert.Equal(t, []router.Route{
		{Method: http.MethodGet, Pattern: "/a"},
		{Method: "", Pattern: "/b"},
	}, r.Routes())
}

type customCtx struct {
	*router.Context
}

func TestRouter_ContextFactory(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { router.New[*customCtx]() })

	r := router.New(router.WithContextFactory(func(w http.ResponseWriter, req *http.Request) *customCtx {
		return &customCtx{Context: router.NewContext(w, req)}
	}))
	r.Get("/", func(ctx *customCtx) handler.Response { return text("custom") })

	assert.Equal(t, "custom", serve(t, r, http.MethodGet, "/").Body.String())
}
