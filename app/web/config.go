package web

import (
	"time"

	"github.com/dmitrymomot/ssrkit/core/server"
)

// Search backends selectable with SEARCH_BACKEND.
const (
	BackendStatic     = "static"
	BackendOpenSearch = "opensearch"
	BackendRemote     = "remote"
)

type Config struct {
	Server server.Config
	Search SearchConfig

	AppName  string `env:"APP_NAME" envDefault:"ssrkit"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	RenderConcurrency int           `env:"RENDER_CONCURRENCY" envDefault:"4"`
	BoundaryTimeout   time.Duration `env:"RENDER_BOUNDARY_TIMEOUT" envDefault:"10s"`
}

type SearchConfig struct {
	Backend       string        `env:"SEARCH_BACKEND" envDefault:"static"`
	CatalogPath   string        `env:"SEARCH_CATALOG" envDefault:"data/catalog.json"`
	RemoteURL     string        `env:"SEARCH_REMOTE_URL"`
	RemoteTimeout time.Duration `env:"SEARCH_REMOTE_TIMEOUT" envDefault:"5s"`
	Cache         bool          `env:"SEARCH_CACHE" envDefault:"false"`
}

// IsProduction reports whether the app runs in production.
func (c Config) IsProduction() bool { return c.Env == "production" }
