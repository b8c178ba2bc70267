package controllers

import (
	"context"
	"net/http"

	"github.com/kolamtech/tambak-backend/api/responses"
	"github.com/kolamtech/tambak-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Health reports liveness of the API and its datasource dependencies.
func Health(db, cache pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true

		if db == nil || db.Ping(ctx) != nil {
			checks["database"] = "unavailable"
			healthy = false
		}
		if cache == nil || cache.Ping(ctx) != nil {
			checks["redis"] = "unavailable"
			healthy = false
		}

		payload := map[string]any{"status": "ok", "checks": checks}
		if !healthy {
			payload["status"] = "degraded"
			logg.Warn(ctx, "health check degraded")
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, payload)
			return
		}
		responses.WriteSuccess(w, payload)
	}
}
