package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"strings"

	"codecopilot/internal/compliance"
	"codecopilot/internal/config"
	"codecopilot/internal/http"
	"codecopilot/internal/ingest"
	"codecopilot/internal/llm"
	"codecopilot/internal/pdfx"
	"codecopilot/internal/rag"
	"codecopilot/internal/retrieval"
	"codecopilot/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// Dense index backend: in-memory by default, Qdrant when configured.
	var store vectorstore.VectorStore
	switch cfg.VectorStore {
	case "qdrant":
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		if err := qdrantStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingSize)
		store = qdrantStore
	default:
		store = vectorstore.NewMemoryStore()
		slog.Info("Using in-memory vector store", "collection", cfg.QdrantCollection)
	}

	// Embedder with a persistent content-hash cache in front, so restarts
	// do not re-embed an unchanged corpus.
	embeddingsClient := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingSize)
	cache, err := llm.OpenEmbeddingCache(cfg.EmbeddingCachePath)
	if err != nil {
		log.Fatalf("Failed to open embedding cache: %v", err)
	}
	defer func() {
		_ = cache.Close()
	}()
	embedder := llm.NewCachedEmbedder(embeddingsClient, cache, cfg.EmbeddingModelName)
	slog.Info("Embedding cache ready", "path", cfg.EmbeddingCachePath)

	index := retrieval.NewIndex(store, embedder, cfg.QdrantCollection)

	chunker, err := ingest.NewChunker(ingest.ChunkerConfig{
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
		Extractor:    ingest.DefaultExtractorConfig(),
	})
	if err != nil {
		log.Fatalf("Failed to create chunker: %v", err)
	}
	pipeline := ingest.NewPipeline(pdfx.ExtractPages, chunker, index)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	engine := rag.NewEngine(index, llmClient, cfg.RetrievalK, cfg.RetrievalMode)
	slog.Info("RAG engine initialized", "mode", cfg.RetrievalMode.String(), "k", cfg.RetrievalK)

	router := http.NewRouter(&http.Deps{
		Engine:    engine,
		Index:     index,
		Rules:     compliance.SeededRules(),
		RoomsPath: cfg.RoomsCSV,
		DoorsPath: cfg.DoorsCSV,
	})

	// Index the document corpus in the background so the API comes up
	// immediately; /health reports "initializing" until this finishes.
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing", "dir", cfg.PDFDir)
		if err := pipeline.IndexDirectory(indexCtx, cfg.PDFDir); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed", "chunks", index.Len())
		}
		index.MarkReady()
	}()

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// setupLogging configures the process-wide structured logger.
func setupLogging(level, format string) {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
