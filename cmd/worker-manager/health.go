// cmd/worker-manager/health.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"career-assessment-workers/internal/engine"
	"career-assessment-workers/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newHealthMux serves /health (liveness), /ready (dependency pings) and,
// when enabled, /metrics.
func newHealthMux(checks map[string]func(context.Context) error, metricsEnabled bool) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		names := make([]string, 0, len(checks))
		for name := range checks {
			names = append(names, name)
		}
		sort.Strings(names)

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				deps[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeJSON(w, status, map[string]interface{}{
			"status":       state,
			"dependencies": deps,
			"time":         time.Now().Format(time.RFC3339),
		})
	})

	if metricsEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// referenceCheck keeps the service out of rotation while the engine cannot
// score every instrument or has no careers to match against.
func referenceCheck(eng *engine.Engine) func(context.Context) error {
	return func(context.Context) error {
		if n := len(eng.Instruments()); n != len(models.AllInstruments) {
			return fmt.Errorf("%d of %d instruments registered", n, len(models.AllInstruments))
		}
		if eng.Catalog().Len() == 0 {
			return fmt.Errorf("career catalog is empty")
		}
		return nil
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
