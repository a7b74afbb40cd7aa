// Package web is the server-rendered search application: HTML pages
// streamed through the document responder, a JSON search API and health
// endpoints.
//
// Routes:
//
//	GET /             home page
//	GET /search       search page; results stream in after the page shell
//	GET /api/search   JSON search results
//	GET /health       readiness, checks run concurrently
//	GET /health/live  liveness
//
// Anything else renders the not-found page with status 404.
package web
