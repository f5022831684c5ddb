package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/learn-arcade/internal/storage"
)

// CheckResult is the status of one dependency.
type CheckResult struct {
	Status string `json:"status"`
}

// HealthResponse maps dependency names to their status.
type HealthResponse map[string]CheckResult

func handleHealth(logger *log.Logger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := HealthResponse{"sqlite": {Status: "ok"}}
		status := http.StatusOK

		if store == nil {
			checks["sqlite"] = CheckResult{Status: "disabled"}
		} else if err := store.Ping(ctx); err != nil {
			logger.Error("health check failed", "name", "sqlite", "error", err)
			checks["sqlite"] = CheckResult{Status: "error"}
			status = http.StatusServiceUnavailable
		}

		writeJSON(w, status, checks)
	}
}
