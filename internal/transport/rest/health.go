package rest

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const pingTimeout = 3 * time.Second

// pinger is anything that can report reachability: the database pool, the
// commerce backend client, object storage.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one dependency probed by the health endpoints. Critical
// dependencies fail readiness; the rest only degrade /health.
type HealthCheck struct {
	Name     string
	Pinger   pinger
	Critical bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	checks  []HealthCheck
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if every critical dependency answers,
// 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	results := h.probe(r.Context(), true)

	for _, res := range results {
		if res.err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:    "down",
				Timestamp: time.Now(),
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Every dependency is pinged with latency
// measurement. A failing critical dependency yields "down" and 503; a failing
// non-critical one yields "degraded" and 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	results := h.probe(r.Context(), false)

	components := make(map[string]CompStatus, len(results))
	overallStatus := "ok"

	for _, res := range results {
		if res.err != nil {
			components[res.check.Name] = CompStatus{Status: "down"}
			switch {
			case res.check.Critical:
				overallStatus = "down"
			case overallStatus == "ok":
				overallStatus = "degraded"
			}
			continue
		}
		components[res.check.Name] = CompStatus{
			Status:  "ok",
			Latency: res.latency.String(),
		}
	}

	status := http.StatusOK
	if overallStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

type probeResult struct {
	check   HealthCheck
	latency time.Duration
	err     error
}

// probe pings the checks concurrently, each bounded by pingTimeout.
func (h *HealthHandler) probe(ctx context.Context, criticalOnly bool) []probeResult {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		results []probeResult
		g       errgroup.Group
	)
	for _, c := range h.checks {
		if criticalOnly && !c.Critical {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := c.Pinger.Ping(ctx)
			res := probeResult{check: c, latency: time.Since(start), err: err}

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].check.Name < results[j].check.Name })
	return results
}
