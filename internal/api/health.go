package api

import (
	"net/http"

	"github.com/weconnect/agrisearch/internal/log"
)

// ReadyChecker reports whether the serving dependencies are usable. The
// vector store satisfies this with its document count.
type ReadyChecker interface {
	Count() int
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	ready  ReadyChecker
	logger log.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(ready ReadyChecker, logger log.Logger) *HealthHandler {
	return &HealthHandler{ready: ready, logger: logger}
}

// RegisterRoutes registers health routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.liveness)
	mux.HandleFunc("GET /ready", h.readiness)
}

// liveness returns 200 OK if the process is alive.
func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readiness returns 200 OK once the vector collection is loaded and
// non-empty. An empty collection means ingestion has not run yet, so every
// question would fall back.
func (h *HealthHandler) readiness(w http.ResponseWriter, _ *http.Request) {
	if h.ready == nil {
		http.Error(w, "vector store not configured", http.StatusServiceUnavailable)
		return
	}
	if h.ready.Count() == 0 {
		h.logger.Warn("readiness check failed", "reason", "empty collection")
		http.Error(w, "vector collection empty", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
