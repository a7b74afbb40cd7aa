// Package router provides a generic HTTP router built on net/http pattern
// matching, with middleware chaining, inline groups, panic recovery and a
// pluggable error handler.
//
// Patterns are exact matches unless they end in "/*", which matches the whole
// subtree. Path parameters use the {name} syntax and are read with
// Context.Param:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.RequestID[*router.Context]())
//
//	r.Get("/", home)
//	r.Get("/articles/{slug}", article)
//	r.Get("/static/*", assets)
//
// Requests that match no route are passed to the NotFound handler, or to the
// error handler with ErrNotFound when none is set. Panics raised by handlers
// are recovered and reported as PanicError; if the response was already
// committed the panic is only logged.
package router
