package handler

import (
	"context"
	"net/http"
)

// Context is the request context handed to handlers and middleware.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	// SetValue stores a request-scoped value visible through Value and
	// through Request().Context().
	SetValue(key, val any)
}
