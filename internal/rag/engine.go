package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"codecopilot/internal/contextutil"
	"codecopilot/internal/ingest"
	"codecopilot/internal/llm"
	"codecopilot/internal/retrieval"
	"codecopilot/internal/service"
)

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

// maxQueryLength bounds accepted questions.
const maxQueryLength = 500

// FallbackAnswer is returned when retrieval produces no grounding. It is a
// fixed string, never generated.
const FallbackAnswer = "I couldn't find relevant information in the building codes to answer your question. Please try rephrasing or asking about a different topic."

const systemPrompt = `You are an expert building code assistant. Answer questions about building codes based on the provided context.

Instructions:
- Answer the question using ONLY information from the provided context
- If the context doesn't contain enough information, say so clearly
- Always cite your sources using the exact format that appears in the context: [Source: <document name>, Page: <number> (<page type>), Section: <section>]
- Be precise with numbers, units, and requirements
- If multiple sources have conflicting information, mention this
- Use SI units (meters, square meters, millimeters) as specified in the context

Important:
- Never make up building code requirements
- If you're uncertain, state that clearly
- This is informational only, not legal advice`

// Engine answers building code questions with retrieval-augmented
// generation.
type Engine interface {
	// Ask retrieves grounding for the query, generates an answer
	// constrained to that grounding, and reconciles its citations.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// Retriever returns the top-k chunks for a query. Implemented by
// retrieval.Index.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int, mode retrieval.Mode) ([]ingest.Chunk, error)
}

// Generator produces text from a structured chat prompt. Implemented by
// llm.Client.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	retriever Retriever
	generator Generator
	k         int
	mode      retrieval.Mode
}

// NewEngine creates a RAG engine that retrieves k chunks per query using
// the given mode.
func NewEngine(retriever Retriever, generator Generator, k int, mode retrieval.Mode) Engine {
	if k <= 0 {
		k = 5
	}
	return &ragEngine{
		retriever: retriever,
		generator: generator,
		k:         k,
		mode:      mode,
	}
}

// Ask answers a building code question.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.Query == "" {
		return AskResponse{}, &service.ValidationError{Field: "query", Message: "query must not be empty"}
	}
	if utf8.RuneCountInString(req.Query) > maxQueryLength {
		return AskResponse{}, &service.ValidationError{
			Field:   "query",
			Message: fmt.Sprintf("query exceeds %d characters", maxQueryLength),
		}
	}

	logger.InfoContext(ctx, "question received", "mode", e.mode.String(), "k", e.k)

	chunks, err := e.retriever.Retrieve(ctx, req.Query, e.k, e.mode)
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "error", err)
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return AskResponse{}, fmt.Errorf("%w: %v", service.ErrConfiguration, err)
		}
		return AskResponse{}, fmt.Errorf("%w: %v", service.ErrExternalService, err)
	}

	// Zero grounding is a valid outcome, not a fault.
	if len(chunks) == 0 {
		logger.InfoContext(ctx, "no grounding retrieved, returning fallback answer")
		return AskResponse{
			Answer:    FallbackAnswer,
			Citations: []Citation{},
		}, nil
	}

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildUserPrompt(req.Query, chunks)},
	}

	raw, err := e.generator.ChatWithMessages(ctx, messages, llm.ChatParams{Temperature: 0})
	if err != nil {
		logger.ErrorContext(ctx, "generation failed", "error", err)
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return AskResponse{}, fmt.Errorf("%w: %v", service.ErrConfiguration, err)
		}
		return AskResponse{}, fmt.Errorf("%w: %v", service.ErrExternalService, err)
	}

	answer := Repair(raw, chunks)
	citations := DeriveCitations(chunks)

	logger.InfoContext(ctx, "question answered", "chunks", len(chunks), "citations", len(citations))
	return AskResponse{Answer: answer, Citations: citations}, nil
}

// buildUserPrompt renders the retrieved chunks into labeled context blocks
// followed by the question. Each block carries the page-type label so the
// generator can cite pages unambiguously.
func buildUserPrompt(query string, chunks []ingest.Chunk) string {
	blocks := make([]string, len(chunks))
	for i, c := range chunks {
		page, pageType := c.PreferredPage()
		section := ""
		if c.SectionID != "" {
			section = fmt.Sprintf(", Section: %s", c.SectionID)
		}
		blocks[i] = fmt.Sprintf("[Document %d - Source: %s, Page: %d (%s)%s]\n%s",
			i+1, c.SourceID, page, pageType, section, c.Text)
	}
	context := strings.Join(blocks, "\n\n---\n\n")

	return fmt.Sprintf(`Answer this question about building codes:

Question: %s

Context from building code documents:
%s

Provide a clear, accurate answer with citations.`, query, context)
}
