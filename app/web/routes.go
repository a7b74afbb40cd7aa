package web

import (
	"net/http"

	"github.com/dmitrymomot/ssrkit/core/handler"
	"github.com/dmitrymomot/ssrkit/core/health"
	"github.com/dmitrymomot/ssrkit/core/response"
	"github.com/dmitrymomot/ssrkit/core/search"
)

func (app *App) routes() {
	app.router.Get("/", app.home)
	app.router.Get("/search", app.searchPage)
	app.router.Get("/api/search", app.apiSearch)

	app.router.Get("/health", health.Readiness[*Context](app.logger, app.checks...))
	app.router.Get("/health/live", health.Liveness[*Context])

	app.router.NotFound(app.notFound)
}

func (app *App) home(*Context) handler.Response {
	return response.Document(app.responder, http.StatusOK, homePage(app.name))
}

func (app *App) searchPage(ctx *Context) handler.Response {
	q := search.ParseQuery(ctx.Request().URL.Query())
	return response.Document(app.responder, http.StatusOK, searchPage(app.name, q, app.searcher))
}

func (app *App) apiSearch(ctx *Context) handler.Response {
	q := search.ParseQuery(ctx.Request().URL.Query())
	res, err := app.searcher.Search(ctx, q)
	if err != nil {
		return response.Error(response.ErrBadGateway.WithError(err))
	}
	return response.JSON(res)
}

func (app *App) notFound(ctx *Context) handler.Response {
	return response.Document(app.responder, http.StatusNotFound, notFoundPage(app.name, ctx.Request().URL.Path))
}
