package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/Gubchik123/LapZone/api/responses"
	"github.com/Gubchik123/LapZone/pkg/config"
	pkgerrors "github.com/Gubchik123/LapZone/pkg/errors"
	"github.com/Gubchik123/LapZone/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LapZone-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing store and aggregates the failures, so one
// response names everything that is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, db, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LapZone-Env", cfg.App.Env)

		var err error
		if db != nil {
			if pingErr := db.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if cache != nil {
			if pingErr := cache.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
