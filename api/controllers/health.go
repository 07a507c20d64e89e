package controllers

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/multierr"

	"github.com/angelmondragon/rocketcart/api/responses"
	"github.com/angelmondragon/rocketcart/pkg/config"
	pkgerrors "github.com/angelmondragon/rocketcart/pkg/errors"
	"github.com/angelmondragon/rocketcart/pkg/logger"
)

const envHeader = "X-RocketCart-Env"

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every dependency and reports each one's state. Per-check
// states are left out of failures in prod.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := make(map[string]string, len(names))
		var err error
		for _, name := range names {
			dep := deps[name]
			if dep == nil {
				checks[name] = "missing"
				err = multierr.Append(err, fmt.Errorf("%s: not configured", name))
				continue
			}
			if pingErr := dep.Ping(r.Context()); pingErr != nil {
				checks[name] = "down"
				err = multierr.Append(err, fmt.Errorf("%s: %w", name, pingErr))
				continue
			}
			checks[name] = "up"
		}

		if err != nil {
			failure := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependencies unavailable")
			if !cfg.App.IsProd() {
				failure = failure.WithDetails(checks)
			}
			responses.WriteError(r.Context(), logg, w, failure)
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
