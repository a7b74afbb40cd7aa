// Package response provides handler.Response constructors for plain text,
// HTML, JSON, templ components and streamed server-rendered documents, plus
// error handlers that map errors to HTTP responses.
//
// Streamed documents:
//
//	responder := ssr.New(engine, ssr.WithLogger(log))
//
//	r.Get("/", func(ctx *router.Context) handler.Response {
//		return response.Document(responder, http.StatusOK, pages.Home())
//	})
//
// Errors returned by a Response reach the router's error handler. An
// HTTPError, or any error with a StatusCode() int method, picks the status;
// everything else becomes 500:
//
//	router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]),
//	)
package response
