package handlers

import (
	"errors"
	"net/http"

	"codecopilot/internal/compliance"
	"codecopilot/internal/contextutil"
	"codecopilot/internal/service"
)

// IssuesHandler checks the building design against the code rules and
// reports violations. The design CSVs are reloaded when their modification
// time changes, so edits show up without a restart.
type IssuesHandler struct {
	design  *compliance.DesignCache
	rules   []compliance.Rule
	summary bool
}

// NewIssuesHandler creates a handler returning the full issue list.
func NewIssuesHandler(roomsPath, doorsPath string, rules []compliance.Rule) *IssuesHandler {
	return &IssuesHandler{design: compliance.NewDesignCache(roomsPath, doorsPath), rules: rules}
}

// NewIssuesSummaryHandler creates a handler returning aggregate counts
// instead of individual issues.
func NewIssuesSummaryHandler(roomsPath, doorsPath string, rules []compliance.Rule) *IssuesHandler {
	return &IssuesHandler{design: compliance.NewDesignCache(roomsPath, doorsPath), rules: rules, summary: true}
}

// IssuesResponse represents the compliance check response.
type IssuesResponse struct {
	Issues []compliance.Issue `json:"issues"`
	Count  int                `json:"count"`
}

// ServeHTTP loads the design, runs the compliance check, and returns the
// issues (or their summary).
func (h *IssuesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(ctx, w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	rooms, doors, err := h.design.Load()
	if err != nil {
		h.handleLoadError(w, r, err)
		return
	}

	issues := compliance.Check(rooms, doors, h.rules)
	logger.InfoContext(ctx, "compliance check completed",
		"rooms", len(rooms), "doors", len(doors), "issues", len(issues))

	if h.summary {
		writeJSON(ctx, w, http.StatusOK, compliance.Summarize(issues))
		return
	}
	if issues == nil {
		issues = []compliance.Issue{}
	}
	writeJSON(ctx, w, http.StatusOK, IssuesResponse{Issues: issues, Count: len(issues)})
}

// handleLoadError maps design loading errors to HTTP status codes.
func (h *IssuesHandler) handleLoadError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var rowErr *service.RowError
	switch {
	case errors.Is(err, service.ErrNotFound):
		logger.WarnContext(ctx, "design file missing", "error", err)
		writeError(ctx, w, http.StatusNotFound, err.Error())
	case errors.As(err, &rowErr):
		logger.WarnContext(ctx, "malformed design row", "error", err)
		writeError(ctx, w, http.StatusBadRequest, rowErr.Error())
	default:
		logger.ErrorContext(ctx, "failed to load design", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to load design")
	}
}
