package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codecopilot/internal/compliance"
	"codecopilot/internal/handlers"
	"codecopilot/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine    rag.Engine
	Index     handlers.IndexStatus
	Rules     []compliance.Rule
	RoomsPath string
	DoorsPath string
}

// NewRouter creates the HTTP router with all routes registered.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.Engine)
	issuesHandler := handlers.NewIssuesHandler(deps.RoomsPath, deps.DoorsPath, deps.Rules)
	summaryHandler := handlers.NewIssuesSummaryHandler(deps.RoomsPath, deps.DoorsPath, deps.Rules)
	rulesHandler := handlers.NewRulesHandler(deps.Rules)
	healthHandler := handlers.NewHealthHandler(deps.Index)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Method(http.MethodGet, "/issues", issuesHandler)
		r.Method(http.MethodGet, "/issues/summary", summaryHandler)
		r.Method(http.MethodGet, "/rules", rulesHandler)
	})

	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
