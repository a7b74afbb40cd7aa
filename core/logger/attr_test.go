package logger_test

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

// ============================================================================
// Error Handling Tests
// ============================================================================

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

type stackErr struct{ stack []byte }

func (e *stackErr) Error() string { return "with stack" }
func (e *stackErr) Stack() []byte { return e.stack }

func TestErrorStack(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()
		attr := logger.ErrorStack(&stackErr{stack: []byte("goroutine 1")})
		assert.Equal(t, "stack", attr.Key)
		assert.Equal(t, "goroutine 1", attr.Value.String())
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("render: %w", &stackErr{stack: []byte("frames")})
		assert.Equal(t, "frames", logger.ErrorStack(err).Value.String())
	})

	t.Run("plain_error", func(t *testing.T) {
		t.Parallel()
		assert.True(t, logger.ErrorStack(errors.New("plain")).Equal(slog.Attr{}))
		assert.True(t, logger.ErrorStack(nil).Equal(slog.Attr{}))
		assert.True(t, logger.ErrorStack(&stackErr{}).Equal(slog.Attr{}))
	})
}

func TestStack(t *testing.T) {
	t.Parallel()
	attr := logger.Stack()
	assert.Equal(t, "stack", attr.Key)
	assert.True(t, strings.Contains(attr.Value.String(), "TestStack"))
}

// ============================================================================
// HTTP and Metadata Tests
// ============================================================================

func TestHTTPAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET", logger.Method("GET").Value.String())
	assert.Equal(t, "/home", logger.Path("/home").Value.String())
	assert.Equal(t, int64(404), logger.StatusCode(404).Value.Int64())
	assert.Equal(t, int64(10), logger.BytesOut(10).Value.Int64())
	assert.Equal(t, "1.2.3.4:5", logger.RemoteAddr("1.2.3.4:5").Value.String())

	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	assert.True(t, logger.Query("").Equal(slog.Attr{}))
	assert.True(t, logger.URL("").Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	t.Parallel()
	attr := logger.Duration(2 * time.Second)
	assert.Equal(t, "duration", attr.Key)
	assert.Equal(t, 2*time.Second, attr.Value.Duration())

	elapsed := logger.Elapsed(time.Now().Add(-time.Second))
	assert.GreaterOrEqual(t, elapsed.Value.Duration(), time.Second)
}
