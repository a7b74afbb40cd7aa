package response

import (
	"net/http"

	"github.com/dmitrymomot/ssrkit/core/handler"
)

// Render executes resp for ctx and falls back to a plain 500 on error.
func Render(ctx handler.Context, resp handler.Response) {
	if resp == nil {
		return
	}
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

func body(contentType, content string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if content == "" {
			return nil
		}
		_, err := w.Write([]byte(content))
		return err
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return body("text/plain; charset=utf-8", content, http.StatusOK)
}

// StringWithStatus creates a text/plain response with a custom status.
func StringWithStatus(content string, status int) handler.Response {
	return body("text/plain; charset=utf-8", content, status)
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Response {
	return body("text/html; charset=utf-8", content, http.StatusOK)
}

// HTMLWithStatus creates a text/html response with a custom status.
func HTMLWithStatus(content string, status int) handler.Response {
	return body("text/html; charset=utf-8", content, status)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return Status(http.StatusNoContent)
}

// Status creates an empty response with the given status.
func Status(code int) handler.Response {
	return body("", "", code)
}
