package controllers

import (
	"context"
	"net/http"

	"github.com/luminaretail/orders-backend/api/responses"
	pkgerrors "github.com/luminaretail/orders-backend/pkg/errors"
	"github.com/luminaretail/orders-backend/pkg/logger"
)

// Pinger is the slice of a backing client the readiness probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
// Dependencies that are nil (for example redis in a minimal dev setup) are
// skipped rather than failed.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ping "+name))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
