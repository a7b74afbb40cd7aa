// Package ssrkit is a toolkit for server-rendered web applications that
// stream their HTML.
//
// The central piece is core/ssr: a document responder that bridges an
// incoming request and a streaming renderer into an HTTP response whose
// status reflects whether rendering succeeded. The rest of the module
// supplies what an application around it needs:
//
//   - core/render: streaming engine for templ components with inline and
//     deferred boundaries
//   - core/response: handler responses, including the streamed Document
//   - core/router, core/handler: generic routing over http.ServeMux
//   - core/search: query contract and search backends
//   - core/config, core/logger, core/server, core/health: ambient services
//   - middleware: request IDs and access logging
//   - integration/database: Redis and OpenSearch clients
//   - pkg/async: single-assignment futures
//   - pkg/apiclient: injected JSON API client
//
// app/web and cmd/server assemble these into a runnable search site.
package ssrkit
