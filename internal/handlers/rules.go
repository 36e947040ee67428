package handlers

import (
	"net/http"

	"codecopilot/internal/compliance"
	"codecopilot/internal/contextutil"
)

// RulesHandler lists the building code rules the compliance checker
// enforces.
type RulesHandler struct {
	rules []compliance.Rule
}

// NewRulesHandler creates a new RulesHandler.
func NewRulesHandler(rules []compliance.Rule) *RulesHandler {
	return &RulesHandler{rules: rules}
}

// RulesResponse represents the rule listing response.
type RulesResponse struct {
	Rules []compliance.Rule `json:"rules"`
	Count int               `json:"count"`
}

// ServeHTTP returns the active rule set.
func (h *RulesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(ctx, w, http.StatusOK, RulesResponse{Rules: h.rules, Count: len(h.rules)})
}
