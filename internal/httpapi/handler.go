// Package httpapi serves the public read-only API consumed by the site
// frontend.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"shelfcore/internal/aggregate"
	"shelfcore/internal/observability"
)

// Logger is the minimal logging surface the handler needs.
type Logger interface {
	Printf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Handler routes the public API. Every response is JSON; unknown paths get a
// FastAPI-shaped {"detail": ...} body for frontend compatibility.
type Handler struct {
	Aggregate *aggregate.Service
	Metrics   *observability.Metrics
	Log       Logger

	metricsHandler http.Handler
}

// NewHandler constructs the API handler. metrics may be nil to disable the
// /metrics endpoint and instrumentation.
func NewHandler(agg *aggregate.Service, metrics *observability.Metrics, log Logger) *Handler {
	if log == nil {
		log = nopLogger{}
	}
	h := &Handler{Aggregate: agg, Metrics: metrics, Log: log}
	if metrics != nil {
		h.metricsHandler = metrics.Handler()
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/api/v1/all":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		h.handleAll(w, r)
	case path == "/health":
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case path == "/metrics" && h.metricsHandler != nil:
		h.metricsHandler.ServeHTTP(w, r)
	default:
		writeError(w, http.StatusNotFound, "Not Found")
	}
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	payload, fallback := h.Aggregate.AllData(r.Context())
	if h.Metrics != nil {
		h.Metrics.AggregateDuration.Observe(time.Since(start).Seconds())
		outcome := observability.OutcomeOK
		if fallback {
			outcome = observability.OutcomeFallback
		}
		h.Metrics.AggregateRequests.WithLabelValues(outcome).Inc()
	}
	if fallback {
		h.Log.Printf("GET /api/v1/all served fallback payload")
	}
	writeJSON(w, http.StatusOK, payload)
}

// allowCORS opens the API to any origin. The site is served from a different
// host than the API.
func allowCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"detail": message})
}
