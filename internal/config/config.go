package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"codecopilot/internal/retrieval"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL         string
	LLMModelName       string
	LLMAPIKey          string
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string
	EmbeddingSize      int
	EmbeddingCachePath string

	VectorStore      string // "memory" or "qdrant"
	QdrantURL        string
	QdrantCollection string

	PDFDir    string
	RoomsCSV  string
	DoorsCSV  string

	RetrievalMode retrieval.Mode
	RetrievalK    int

	ChunkSize    int
	ChunkOverlap int

	APIPort   string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults
// for optional fields. A .env file in the current directory or any parent
// (up to 5 levels) is loaded first; variables already set in the
// environment take precedence over .env values.
//
// The LLM API key is intentionally NOT required here: the service starts
// without credentials and surfaces a configuration error on the first chat
// request instead.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Walk up to find a project-root .env (next to go.mod in dev setups).
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", getEnv("LLM_API_KEY", "")),
		EmbeddingCachePath: getEnv("EMBEDDING_CACHE_PATH", "./data/embedding-cache.db"),
		VectorStore:        getEnv("VECTOR_STORE", "memory"),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "building_codes"),
		PDFDir:             getEnv("PDF_DIR", "./data/pdfs"),
		RoomsCSV:           getEnv("DESIGN_ROOMS_CSV", "./data/rooms.csv"),
		DoorsCSV:           getEnv("DESIGN_DOORS_CSV", "./data/doors.csv"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	if cfg.VectorStore != "memory" && cfg.VectorStore != "qdrant" {
		return nil, fmt.Errorf("VECTOR_STORE must be \"memory\" or \"qdrant\", got %q", cfg.VectorStore)
	}

	cfg.EmbeddingSize, err = getEnvInt("EMBEDDING_VECTOR_SIZE", 1536)
	if err != nil {
		return nil, err
	}
	if cfg.EmbeddingSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}

	cfg.RetrievalK, err = getEnvInt("RETRIEVAL_K", 5)
	if err != nil {
		return nil, err
	}
	if cfg.RetrievalK <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_K must be greater than 0")
	}

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 100)
	if err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP (%d) must be less than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	sparseWeight, err := getEnvFloat("HYBRID_SPARSE_WEIGHT", 0.5)
	if err != nil {
		return nil, err
	}
	denseWeight, err := getEnvFloat("HYBRID_DENSE_WEIGHT", 0.5)
	if err != nil {
		return nil, err
	}

	// Sparse default: exact section-number matching works better than
	// semantic similarity on code text.
	modeStr := getEnv("RETRIEVAL_MODE", "sparse")
	mode, err := retrieval.ParseMode(modeStr, sparseWeight, denseWeight)
	if err != nil {
		return nil, fmt.Errorf("invalid RETRIEVAL_MODE: %w", err)
	}
	cfg.RetrievalMode = mode

	cacheDir := filepath.Dir(cfg.EmbeddingCachePath)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}
