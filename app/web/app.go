package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/ssrkit/core/health"
	"github.com/dmitrymomot/ssrkit/core/logger"
	"github.com/dmitrymomot/ssrkit/core/render"
	"github.com/dmitrymomot/ssrkit/core/response"
	"github.com/dmitrymomot/ssrkit/core/router"
	"github.com/dmitrymomot/ssrkit/core/search"
	"github.com/dmitrymomot/ssrkit/core/ssr"
	"github.com/dmitrymomot/ssrkit/middleware"
)

var ErrNilSearcher = errors.New("web: searcher is required")

// App holds the application's dependencies and routes.
type App struct {
	name      string
	router    router.Router[*Context]
	responder *ssr.Responder
	renderer  ssr.Renderer
	searcher  search.Searcher
	checks    []health.Check
	logger    *slog.Logger
}

type Option func(*App) error

// New builds the application around searcher.
func New(searcher search.Searcher, opts ...Option) (*App, error) {
	if searcher == nil {
		return nil, ErrNilSearcher
	}

	app := &App{
		name:     "ssrkit",
		searcher: searcher,
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.renderer == nil {
		app.renderer = render.New()
	}
	app.responder = ssr.New(app.renderer, ssr.WithLogger(app.logger))

	app.router = router.New[*Context](
		router.WithContextFactory(newContext),
		router.WithErrorHandler[*Context](app.handleError),
		router.WithLogger[*Context](app.logger),
		router.WithMiddleware[*Context](
			middleware.RequestID[*Context](),
			middleware.LoggingWithLogger[*Context](app.logger),
		),
	)
	app.routes()

	return app, nil
}

func WithName(name string) Option {
	return func(app *App) error {
		if name == "" {
			return errors.New("app name cannot be empty")
		}
		app.name = name
		return nil
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(app *App) error {
		if l == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = l
		return nil
	}
}

// WithRenderer replaces the default render engine.
func WithRenderer(r ssr.Renderer) Option {
	return func(app *App) error {
		if r == nil {
			return errors.New("renderer cannot be nil")
		}
		app.renderer = r
		return nil
	}
}

// WithHealthChecks adds dependency probes to the readiness endpoint.
func WithHealthChecks(checks ...health.Check) Option {
	return func(app *App) error {
		for _, c := range checks {
			if c.Name == "" || c.Fn == nil {
				return errors.New("health check needs a name and a function")
			}
		}
		app.checks = append(app.checks, checks...)
		return nil
	}
}

// ServeHTTP makes App an http.Handler.
func (app *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	app.router.ServeHTTP(w, r)
}

// Routes lists the registered routes.
func (app *App) Routes() []router.Route { return app.router.Routes() }

// handleError answers API requests with JSON and pages with HTML.
func (app *App) handleError(ctx *Context, err error) {
	var pe router.PanicError
	if errors.As(err, &pe) {
		app.logger.ErrorContext(ctx, "handler panic",
			logger.Component("web"), logger.Error(err), logger.ErrorStack(err))
	}

	if strings.HasPrefix(ctx.Request().URL.Path, "/api/") {
		response.JSONErrorHandler(ctx, err)
		return
	}
	response.TemplErrorHandler[*Context](errorPage(app.name))(ctx, err)
}
