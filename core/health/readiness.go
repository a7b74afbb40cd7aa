package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/ssrkit/core/handler"
	"github.com/dmitrymomot/ssrkit/core/logger"
	"github.com/dmitrymomot/ssrkit/core/response"
	"github.com/dmitrymomot/ssrkit/pkg/async"
)

const (
	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
	checkOK           = "ok"
)

// Check is a named dependency probe.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Report is the readiness response body.
type Report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Readiness runs all checks concurrently and reports each result.
// Returns 200 when every check passes, 503 otherwise.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		futures := make([]*async.Future[struct{}], len(checks))
		for i, c := range checks {
			futures[i] = async.Exec(ctx, c, func(ctx context.Context, c Check) error {
				return c.Fn(ctx)
			})
		}

		failed := async.ExecAll(futures...)

		// Every future is settled once ExecAll returns.
		report := Report{Status: StatusReady, Checks: make(map[string]string, len(checks))}
		for i, f := range futures {
			name := checks[i].Name
			if _, err := f.Await(context.Background()); err != nil {
				log.ErrorContext(ctx, "Readiness check failed",
					logger.Component("health"), slog.String("check", name), logger.Error(err))
				report.Checks[name] = err.Error()
				continue
			}
			report.Checks[name] = checkOK
		}

		if failed != nil {
			report.Status = StatusUnavailable
			return response.JSONWithStatus(report, http.StatusServiceUnavailable)
		}
		return response.JSON(report)
	}
}
