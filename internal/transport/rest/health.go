package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/reading-copilot/internal/resilience"
)

// pinger defines the minimal interface for dependency health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// breakerStater reports the AI collaborator's circuit state.
type breakerStater interface {
	BreakerState() resilience.State
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      pinger
	cache   pinger
	llm     breakerStater
	version string
}

// NewHealthHandler creates a HealthHandler. The database is required; the
// cache and the AI collaborator are reported when set with WithCache and
// WithLLM.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// WithCache adds the analysis cache to /health.
func (h *HealthHandler) WithCache(c pinger) *HealthHandler {
	h.cache = c
	return h
}

// WithLLM adds the AI collaborator's breaker state to /health.
func (h *HealthHandler) WithLLM(l breakerStater) *HealthHandler {
	h.llm = l
	return h
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

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. The database decides between ok and
// down; a failing cache or an open AI breaker only degrades the service.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	dbStatus := ping(ctx, h.db)
	components["database"] = dbStatus
	if dbStatus.Status != "ok" {
		overallStatus = "down"
	}

	if h.cache != nil {
		st := ping(ctx, h.cache)
		components["cache"] = st
		if st.Status != "ok" && overallStatus == "ok" {
			overallStatus = "degraded"
		}
	}

	if h.llm != nil {
		state := h.llm.BreakerState()
		st := CompStatus{Status: "ok"}
		if state != resilience.StateClosed {
			st.Status = state.String()
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		}
		components["llm"] = st
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

func ping(ctx context.Context, p pinger) CompStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}
