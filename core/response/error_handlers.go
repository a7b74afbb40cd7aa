package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ssrkit/core/handler"
	"github.com/dmitrymomot/ssrkit/core/router"
)

type statusCode interface {
	StatusCode() int
}

// written is implemented by response writers that track whether the
// response has been committed.
type written interface {
	Written() bool
}

// convertToHTTPError maps any error to an HTTPError, keeping the cause.
func convertToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	switch {
	case errors.As(err, &sc):
		status = sc.StatusCode()
	case errors.Is(err, router.ErrNotFound):
		status = http.StatusNotFound
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}
	return base.WithError(err)
}

func committed(ctx handler.Context) bool {
	w, ok := ctx.ResponseWriter().(written)
	return ok && w.Written()
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	if committed(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON objects.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	if committed(ctx) {
		return
	}
	httpErr := convertToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}

// TemplErrorHandler renders errors with the component returned by page.
func TemplErrorHandler[C handler.Context](page func(HTTPError) templ.Component) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		if committed(ctx) {
			return
		}
		httpErr := convertToHTTPError(err)
		Render(ctx, TemplWithStatus(page(httpErr), httpErr.Status))
	}
}

// HTMLErrorHandler renders errors as a minimal HTML page.
func HTMLErrorHandler[C handler.Context](ctx C, err error) {
	TemplErrorHandler[C](defaultErrorPage)(ctx, err)
}

func defaultErrorPage(e HTTPError) templ.Component {
	return templ.Raw(fmt.Sprintf(
		"<!doctype html><html><head><title>%d %s</title></head><body><h1>%d</h1><p>%s</p></body></html>",
		e.Status, templ.EscapeString(http.StatusText(e.Status)), e.Status, templ.EscapeString(e.Message),
	))
}
