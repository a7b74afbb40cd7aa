// Package handler defines the request handling contract shared by the router,
// middleware and response packages.
//
// Handlers receive a typed request context and return a Response, a function
// that writes the status, headers and body. Rendering errors returned by a
// Response are passed to the router's ErrorHandler.
//
//	func home(ctx *router.Context) handler.Response {
//		return response.Document(responder, http.StatusOK, pages.Home())
//	}
package handler
