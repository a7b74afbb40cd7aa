// Package middleware provides request-scoped cross-cutting handlers for the
// router: request IDs and access logging.
//
//	r := router.New[*web.Context](
//		router.WithMiddleware(
//			middleware.RequestID[*web.Context](),
//			middleware.LoggingWithLogger[*web.Context](log),
//		),
//	)
//
// Logging wraps the response writer without hiding http.Flusher, so
// streamed documents still reach the client chunk by chunk. The request
// line is logged when the handler starts and the outcome once the response
// has been fully written, including the bytes streamed after the status.
//
// RequestIDExtractor feeds the request ID to every log record made with
// the request context:
//
//	log := logger.New(logger.WithContextExtractors(middleware.RequestIDExtractor))
package middleware
