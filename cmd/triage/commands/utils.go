// ABOUTME: Shared engine wiring for CLI commands
// ABOUTME: Builds the config, index, providers, and pipeline in one place
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/openclinic/triage/internal/config"
	"github.com/openclinic/triage/internal/core"
	"github.com/openclinic/triage/internal/corpus"
	"github.com/openclinic/triage/internal/llm"
	"github.com/openclinic/triage/internal/storage/sqlite"
)

// engine bundles the wired components commands operate on
type engine struct {
	cfg      *config.Config
	index    *sqlite.Index
	pipeline *core.Pipeline
	indexer  *core.Indexer
	loader   *corpus.Loader
}

// newEngine loads configuration and wires the full analysis stack.
// Callers must Close the returned engine.
func newEngine() (*engine, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewOpenAIClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.LLMTimeout,
		MaxRetries:     cfg.LLMMaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	db, err := sqlite.Open(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", cfg.IndexPath, err)
	}
	index := sqlite.NewIndex(db)

	chunker, err := core.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap, nil)
	if err != nil {
		_ = index.Close()
		return nil, err
	}
	indexer, err := core.NewIndexer(chunker, client, index, cfg.EmbedConcurrency)
	if err != nil {
		_ = index.Close()
		return nil, err
	}
	retriever, err := core.NewRetriever(client, index, cfg.RetrievalK, cfg.MinScore)
	if err != nil {
		_ = index.Close()
		return nil, err
	}
	orchestrator, err := core.NewOrchestrator(client, cfg.MaxContextChunks)
	if err != nil {
		_ = index.Close()
		return nil, err
	}

	return &engine{
		cfg:      cfg,
		index:    index,
		pipeline: core.NewPipeline(core.NewEmergencyGate(), retriever, orchestrator),
		indexer:  indexer,
		loader:   corpus.NewLoader(cfg.CorpusPath),
	}, nil
}

// Close releases the engine's index handle
func (e *engine) Close() error {
	return e.index.Close()
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
