package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/ssrkit/app/web"
	"github.com/dmitrymomot/ssrkit/core/config"
	"github.com/dmitrymomot/ssrkit/core/health"
	"github.com/dmitrymomot/ssrkit/core/logger"
	"github.com/dmitrymomot/ssrkit/core/render"
	"github.com/dmitrymomot/ssrkit/core/search"
	"github.com/dmitrymomot/ssrkit/core/server"
	"github.com/dmitrymomot/ssrkit/integration/database/opensearch"
	"github.com/dmitrymomot/ssrkit/integration/database/redis"
	"github.com/dmitrymomot/ssrkit/middleware"
	"github.com/dmitrymomot/ssrkit/pkg/apiclient"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg web.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg)

	searcher, checks, cleanup, err := newSearcher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	app, err := web.New(searcher,
		web.WithName(cfg.AppName),
		web.WithLogger(log),
		web.WithRenderer(render.New(
			render.WithConcurrency(cfg.RenderConcurrency),
			render.WithBoundaryTimeout(cfg.BoundaryTimeout),
		)),
		web.WithHealthChecks(checks...),
	)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, app))
	return g.Wait()
}

func newLogger(cfg web.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithLevelString(cfg.LogLevel),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if cfg.IsProduction() {
		opts = append([]logger.Option{logger.WithProduction(cfg.AppName)}, opts...)
	} else {
		opts = append([]logger.Option{logger.WithDevelopment(cfg.AppName)}, opts...)
	}
	return logger.New(opts...)
}

// newSearcher builds the configured search backend, optionally behind the
// Redis cache, and the health checks for what it connected to.
func newSearcher(ctx context.Context, cfg web.Config, log *slog.Logger) (search.Searcher, []health.Check, func(), error) {
	var (
		searcher search.Searcher
		checks   []health.Check
		cleanup  = func() {}
	)

	switch cfg.Search.Backend {
	case web.BackendStatic:
		s, err := search.LoadStaticFile(cfg.Search.CatalogPath)
		if err != nil {
			return nil, nil, cleanup, err
		}
		log.Info("search catalog loaded",
			logger.Component("search"), slog.String("path", cfg.Search.CatalogPath), logger.Count("items", s.Len()))
		searcher = s

	case web.BackendOpenSearch:
		var osCfg opensearch.Config
		if err := config.Load(&osCfg); err != nil {
			return nil, nil, cleanup, err
		}
		client, err := opensearch.New(ctx, osCfg)
		if err != nil {
			return nil, nil, cleanup, err
		}
		searcher = opensearch.NewSearcher(client, osCfg.Index)
		checks = append(checks, health.Check{Name: "opensearch", Fn: opensearch.Healthcheck(client)})

	case web.BackendRemote:
		client, err := apiclient.New(cfg.Search.RemoteURL,
			apiclient.WithTimeout(cfg.Search.RemoteTimeout),
			apiclient.WithLogger(log),
		)
		if err != nil {
			return nil, nil, cleanup, err
		}
		searcher = search.NewRemote(client, "")

	default:
		return nil, nil, cleanup, fmt.Errorf("unknown search backend %q", cfg.Search.Backend)
	}

	if !cfg.Search.Cache {
		return searcher, checks, cleanup, nil
	}

	var rCfg redis.Config
	if err := config.Load(&rCfg); err != nil {
		return nil, nil, cleanup, err
	}
	rdb, err := redis.Connect(ctx, rCfg)
	if err != nil {
		return nil, nil, cleanup, err
	}
	cleanup = func() { _ = rdb.Close() }

	cached, err := search.NewCached(searcher, rdb,
		search.WithTTL(rCfg.CacheTTL),
		search.WithCacheLogger(log),
	)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	checks = append(checks, health.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})

	return cached, checks, cleanup, nil
}
