package render_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/core/render"
	"github.com/dmitrymomot/ssrkit/core/ssr"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func failing(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return err })
}

func panicking(v any) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { panic(v) })
}

// shell renders "<html><body>" followed by the given slots.
func shell(slots ...string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<html><body>"); err != nil {
			return err
		}
		for _, id := range slots {
			if err := render.Slot(id).Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// recorder captures callbacks in the order they fire.
type recorder struct {
	mu       sync.Mutex
	events   []string
	errs     []error
	shellErr error
	settled  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{settled: make(chan struct{})}
}

func (r *recorder) callbacks() ssr.Callbacks {
	return ssr.Callbacks{
		OnShellReady: func() {
			r.mu.Lock()
			r.events = append(r.events, "ready")
			r.mu.Unlock()
			close(r.settled)
		},
		OnShellError: func(err error) {
			r.mu.Lock()
			r.events = append(r.events, "shell-error")
			r.shellErr = err
			r.mu.Unlock()
			close(r.settled)
		},
		OnError: func(err error) {
			r.mu.Lock()
			r.events = append(r.events, "error")
			r.errs = append(r.errs, err)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.settled:
	case <-time.After(2 * time.Second):
		t.Fatal("shell never settled")
	}
}

func (r *recorder) snapshot() ([]string, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...), append([]error(nil), r.errs...)
}

func TestEngine_StartValidation(t *testing.T) {
	t.Parallel()

	e := render.New()
	cb := newRecorder().callbacks()

	tests := []struct {
		name string
		rc   ssr.RenderContext
		want error
	}{
		{name: "not a page", rc: "hello", want: render.ErrUnsupportedContext},
		{name: "nil page", rc: (*render.Page)(nil), want: render.ErrUnsupportedContext},
		{name: "missing shell", rc: &render.Page{}, want: render.ErrMissingShell},
		{
			name: "duplicate boundary",
			rc: &render.Page{
				Shell:    shell(),
				Inline:   []render.Boundary{{ID: "a", Content: text("x")}},
				Deferred: []render.Boundary{{ID: "a", Content: text("y")}},
			},
			want: render.ErrDuplicateBoundary,
		},
		{
			name: "empty boundary id",
			rc:   &render.Page{Shell: shell(), Inline: []render.Boundary{{Content: text("x")}}},
			want: render.ErrInvalidBoundaryID,
		},
		{
			name: "quote in boundary id",
			rc: &render.Page{
				Shell:    shell(),
				Deferred: []render.Boundary{{ID: `a" onload="x`, Content: text("y")}},
			},
			want: render.ErrInvalidBoundaryID,
		},
		{
			name: "script close in boundary id",
			rc: &render.Page{
				Shell:    shell(),
				Deferred: []render.Boundary{{ID: "</script><script>alert(1)", Content: text("y")}},
			},
			want: render.ErrInvalidBoundaryID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stream, err := e.Start(context.Background(), tt.rc, cb)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, stream)
		})
	}
}

func TestEngine_ShellOnly(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	stream, err := render.New().Start(context.Background(), &render.Page{Shell: shell()}, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))

	assert.Equal(t, "<html><body></body></html>", buf.String())
	events, _ := rec.snapshot()
	assert.Equal(t, []string{"ready"}, events)
}

func TestEngine_CustomTail(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	page := &render.Page{Shell: shell(), Tail: text("<footer></footer></body></html>")}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))
	assert.Equal(t, "<html><body><footer></footer></body></html>", buf.String())
}

func TestEngine_InlineAndDeferred(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	page := &render.Page{
		Shell:    shell("summary", "results"),
		Inline:   []render.Boundary{{ID: "summary", Content: text("<p>3 results</p>")}},
		Deferred: []render.Boundary{{ID: "results", Content: text("<ul><li>one</li></ul>"), Fallback: text("loading")}},
	}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<html><body><p>3 results</p><div id="ssr-b:results">loading</div>`), out)
	assert.Contains(t, out, `<template id="ssr-t:results"><ul><li>one</li></ul></template><script>__ssrSwap("results")</script>`)
	assert.Equal(t, 1, strings.Count(out, "function __ssrSwap"))
	assert.True(t, strings.HasSuffix(out, "</body></html>"))
	assert.Less(t, strings.Index(out, "ssr-b:results"), strings.Index(out, "ssr-t:results"))

	events, errs := rec.snapshot()
	assert.Equal(t, []string{"ready"}, events)
	assert.Empty(t, errs)
}

func TestEngine_InlineErrorBeforeShellReady(t *testing.T) {
	t.Parallel()

	boom := errors.New("summary unavailable")
	rec := newRecorder()
	page := &render.Page{
		Shell:  shell("summary"),
		Inline: []render.Boundary{{ID: "summary", Content: failing(boom), Fallback: text("n/a")}},
	}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	events, errs := rec.snapshot()
	assert.Equal(t, []string{"error", "ready"}, events)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], boom)

	var be *render.BoundaryError
	require.ErrorAs(t, errs[0], &be)
	assert.Equal(t, "summary", be.ID)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))
	assert.Equal(t, "<html><body>n/a</body></html>", buf.String())
}

func TestEngine_InlineFallbackFailureFailsShell(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	page := &render.Page{
		Shell:  shell("summary"),
		Inline: []render.Boundary{{ID: "summary", Content: failing(errors.New("a")), Fallback: failing(errors.New("b"))}},
	}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	events, _ := rec.snapshot()
	assert.Equal(t, []string{"error", "shell-error"}, events)
	assert.Error(t, stream.Pipe(io.Discard))
}

func TestEngine_ShellFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("layout broken")
	tests := []struct {
		name  string
		shell templ.Component
		check func(t *testing.T, err error)
	}{
		{
			name:  "error",
			shell: failing(boom),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, boom) },
		},
		{
			name:  "panic",
			shell: panicking("nil layout"),
			check: func(t *testing.T, err error) {
				var pe *render.PanicError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "nil layout", pe.Value)
				assert.NotEmpty(t, pe.Stack())
			},
		},
		{
			name:  "unknown slot",
			shell: shell("missing"),
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, render.ErrUnknownSlot) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := newRecorder()
			stream, err := render.New().Start(context.Background(), &render.Page{Shell: tt.shell}, rec.callbacks())
			require.NoError(t, err)
			rec.wait(t)

			events, _ := rec.snapshot()
			assert.Equal(t, []string{"shell-error"}, events)
			tt.check(t, rec.shellErr)

			var buf bytes.Buffer
			assert.Error(t, stream.Pipe(&buf))
			assert.Empty(t, buf.String())
		})
	}
}

func TestEngine_DeferredErrorAfterShellReady(t *testing.T) {
	t.Parallel()

	boom := errors.New("results backend down")
	rec := newRecorder()
	page := &render.Page{
		Shell: shell("a", "b"),
		Deferred: []render.Boundary{
			{ID: "a", Content: failing(boom), Fallback: text("retry later")},
			{ID: "b", Content: panicking(errors.New("nil item")), Fallback: text("…")},
		},
	}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))
	out := buf.String()

	assert.Contains(t, out, `<div id="ssr-b:a">retry later</div>`)
	assert.NotContains(t, out, "ssr-t:a")
	assert.NotContains(t, out, "ssr-t:b")
	assert.NotContains(t, out, "function __ssrSwap")
	assert.True(t, strings.HasSuffix(out, "</body></html>"))

	events, errs := rec.snapshot()
	assert.Equal(t, []string{"ready", "error", "error"}, events)
	require.Len(t, errs, 2)

	var sawBoom, sawPanic bool
	for _, err := range errs {
		if errors.Is(err, boom) {
			sawBoom = true
		}
		var pe *render.PanicError
		if errors.As(err, &pe) {
			sawPanic = true
		}
	}
	assert.True(t, sawBoom)
	assert.True(t, sawPanic)
}

func TestEngine_DeferredRenderConcurrently(t *testing.T) {
	t.Parallel()

	var (
		mu      sync.Mutex
		running int
		peak    int
	)
	slow := func(id string) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			mu.Lock()
			running++
			peak = max(peak, running)
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			running--
			mu.Unlock()
			_, err := io.WriteString(w, id)
			return err
		})
	}

	ids := []string{"a", "b", "c", "d", "e", "f"}
	page := &render.Page{Shell: shell(ids...)}
	for _, id := range ids {
		page.Deferred = append(page.Deferred, render.Boundary{ID: id, Content: slow(id)})
	}

	rec := newRecorder()
	stream, err := render.New(render.WithConcurrency(2)).Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	var buf bytes.Buffer
	require.NoError(t, stream.Pipe(&buf))

	for _, id := range ids {
		assert.Contains(t, buf.String(), `<template id="ssr-t:`+id+`">`+id+`</template>`)
	}
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
	assert.GreaterOrEqual(t, peak, 1)
}

func TestEngine_BoundaryTimeout(t *testing.T) {
	t.Parallel()

	blocking := templ.ComponentFunc(func(ctx context.Context, _ io.Writer) error {
		<-ctx.Done()
		return nil
	})

	rec := newRecorder()
	page := &render.Page{
		Shell:    shell("slow"),
		Deferred: []render.Boundary{{ID: "slow", Content: blocking, Fallback: text("...")}},
	}
	stream, err := render.New(render.WithBoundaryTimeout(10*time.Millisecond)).
		Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	require.NoError(t, stream.Pipe(io.Discard))

	_, errs := rec.snapshot()
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.DeadlineExceeded)
}

func TestEngine_PipeTwice(t *testing.T) {
	t.Parallel()

	rec := newRecorder()
	stream, err := render.New().Start(context.Background(), &render.Page{Shell: shell()}, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	require.NoError(t, stream.Pipe(io.Discard))
	assert.ErrorIs(t, stream.Pipe(io.Discard), render.ErrAlreadyPiped)
}

type failWriter struct{ err error }

func (w failWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEngine_PipeWriteError(t *testing.T) {
	t.Parallel()

	closed := errors.New("client gone")
	rec := newRecorder()
	page := &render.Page{
		Shell:    shell("a"),
		Deferred: []render.Boundary{{ID: "a", Content: text("x")}},
	}
	stream, err := render.New().Start(context.Background(), page, rec.callbacks())
	require.NoError(t, err)
	rec.wait(t)

	assert.ErrorIs(t, stream.Pipe(failWriter{err: closed}), closed)
}

func TestEngine_WithResponder(t *testing.T) {
	t.Parallel()

	responder := ssr.New(render.New())

	t.Run("inline failure forces 500", func(t *testing.T) {
		t.Parallel()

		page := &render.Page{
			Shell:  shell("summary"),
			Inline: []render.Boundary{{ID: "summary", Content: failing(errors.New("x")), Fallback: text("n/a")}},
		}
		req, _ := http.NewRequest(http.MethodGet, "/search", nil)
		resp, err := responder.Respond(context.Background(), req, http.StatusOK, http.Header{}, page).
			AwaitWithTimeout(2 * time.Second)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, resp.Status)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>n/a</body></html>", string(body))
	})

	t.Run("deferred failure keeps status", func(t *testing.T) {
		t.Parallel()

		page := &render.Page{
			Shell:    shell("results"),
			Deferred: []render.Boundary{{ID: "results", Content: failing(errors.New("x")), Fallback: text("...")}},
		}
		req, _ := http.NewRequest(http.MethodGet, "/search", nil)
		resp, err := responder.Respond(context.Background(), req, http.StatusNotFound, http.Header{}, page).
			AwaitWithTimeout(2 * time.Second)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.Status)
		assert.Equal(t, ssr.DefaultContentType, resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `<div id="ssr-b:results">...</div>`)
	})

	t.Run("shell failure rejects", func(t *testing.T) {
		t.Parallel()

		req, _ := http.NewRequest(http.MethodGet, "/", nil)
		_, err := responder.Respond(context.Background(), req, http.StatusOK, http.Header{},
			&render.Page{Shell: panicking("boom")}).AwaitWithTimeout(2 * time.Second)

		var pe *render.PanicError
		assert.ErrorAs(t, err, &pe)
	})
}
