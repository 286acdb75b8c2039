// Package healthcheck provides liveness and readiness endpoints backed by
// named dependency probes.
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks one dependency. It must respect the context deadline.
type Probe func(ctx context.Context) error

// Check is a named dependency probe.
type Check struct {
	Name  string
	Probe Probe
}

// Handler serves /health and /ready.
type Handler struct {
	service string
	version string
	checks  []Check
	timeout time.Duration
	logger  *zap.Logger
}

// NewHandler creates a health handler with the given dependency checks.
func NewHandler(service, version string, logger *zap.Logger, checks ...Check) *Handler {
	return &Handler{
		service: service,
		version: version,
		checks:  checks,
		timeout: 5 * time.Second,
		logger:  logger.Named("healthcheck"),
	}
}

type status struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp int64             `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Live reports process liveness. It never touches dependencies.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, status{
		Status:    "healthy",
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now().Unix(),
	})
}

// Ready runs every dependency probe and reports 503 if any fails.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, check := range h.checks {
		wg.Add(1)
		go func(c Check) {
			defer wg.Done()
			err := c.Probe(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				healthy = false
				results[c.Name] = err.Error()
				h.logger.Warn("Readiness probe failed",
					zap.String("check", c.Name),
					zap.Error(err),
				)
				return
			}
			results[c.Name] = "ok"
		}(check)
	}
	wg.Wait()

	code := http.StatusOK
	state := "ready"
	if !healthy {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}

	h.respond(w, code, status{
		Status:    state,
		Service:   h.service,
		Version:   h.version,
		Timestamp: time.Now().Unix(),
		Checks:    results,
	})
}

func (h *Handler) respond(w http.ResponseWriter, code int, s status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
