package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"codecopilot/internal/contextutil"
	"codecopilot/internal/rag"
	"codecopilot/internal/service"
)

// ChatHandler handles HTTP requests for building code questions.
type ChatHandler struct {
	engine rag.Engine
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine rag.Engine) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// ChatRequest represents the HTTP request payload for chat queries.
type ChatRequest struct {
	Query string `json:"query"`
}

// ServeHTTP answers a building code question with citations.
//
// POST /api/chat with {"query": "..."} returns {"answer": "...",
// "citations": [...]}. Configuration problems return 503 with a remediation
// hint, upstream failures return 502, and invalid queries return 400.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.engine.Ask(ctx, rag.AskRequest{Query: req.Query})
	if err != nil {
		h.handleAskError(w, r, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// handleAskError maps engine errors to HTTP status codes.
func (h *ChatHandler) handleAskError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "invalid chat request", "error", err)
		writeError(ctx, w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrConfiguration):
		logger.ErrorContext(ctx, "chat misconfigured", "error", err)
		writeError(ctx, w, http.StatusServiceUnavailable,
			"The answer service is not configured. Set the LLM API credentials and restart.")
	case errors.Is(err, service.ErrExternalService):
		logger.ErrorContext(ctx, "upstream service failed", "error", err)
		writeError(ctx, w, http.StatusBadGateway, "An upstream service failed. Please try again.")
	default:
		logger.ErrorContext(ctx, "chat request failed", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to process chat request")
	}
}
