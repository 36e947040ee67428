package handlers

import (
	"net/http"
	"time"

	"codecopilot/internal/contextutil"
)

// IndexStatus reports the state of the retrieval index. Implemented by
// retrieval.Index.
type IndexStatus interface {
	Ready() bool
	Len() int
}

// HealthHandler reports service health. The index is the only local
// dependency worth checking; the LLM is checked lazily at call time to
// keep health checks fast.
type HealthHandler struct {
	index IndexStatus
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(index IndexStatus) *HealthHandler {
	return &HealthHandler{index: index}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Status is "healthy" once startup indexing has completed, otherwise
	// "initializing".
	Status string `json:"status"`

	// Timestamp of the health check.
	Timestamp string `json:"timestamp"`

	// IndexedChunks is the number of chunks in the retrieval index.
	IndexedChunks int `json:"indexed_chunks"`
}

// ServeHTTP reports readiness. Returns 200 once indexing has completed,
// 503 while still initializing.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !h.index.Ready() {
		status = "initializing"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		IndexedChunks: h.index.Len(),
	})
}
