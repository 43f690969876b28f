// Package health serves the liveness endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/devconnector-api/internal/platform/logging"
)

const checkTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Response is the health payload.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler runs checks and answers 200 "healthy", or 503 "unhealthy" when any fails.
func Handler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := Response{Status: "healthy"}
		code := http.StatusOK

		if len(checks) > 0 {
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			defer cancel()

			resp.Checks = make(map[string]string, len(checks))
			for name, check := range checks {
				if err := check(ctx); err != nil {
					logging.LogWarn(r.Context(), "health check failed", zap.String("check", name), zap.Error(err))
					resp.Checks[name] = "down"
					resp.Status = "unhealthy"
					code = http.StatusServiceUnavailable
					continue
				}
				resp.Checks[name] = "up"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
