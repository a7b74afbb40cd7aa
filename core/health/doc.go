// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available, checked concurrently
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/health/live", health.Liveness[*web.Context])
//	r.Get("/health", health.Readiness[*web.Context](
//		logger,
//		health.Check{Name: "redis", Fn: redis.Healthcheck(rdb)},
//		health.Check{Name: "search", Fn: opensearch.Healthcheck(os)},
//	))
//	r.Get("/ping", health.NoContent[*web.Context])
package health
