// ABOUTME: Centralized configuration for the triage engine
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all tunables for the triage engine
type Config struct {
	// Corpus and index locations
	CorpusPath string
	IndexPath  string

	// Chunking parameters
	ChunkSize    int
	ChunkOverlap int

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	LLMTimeout     time.Duration
	LLMMaxRetries  int
	RetryDelay     time.Duration

	// Retrieval settings
	RetrievalK       int
	MinScore         float64
	MaxContextChunks int

	// Index build settings
	EmbedConcurrency int
}

// DefaultDataDir returns the default data directory following the XDG spec
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/triage"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "triage")
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		CorpusPath:       getEnv("TRIAGE_CORPUS_PATH", filepath.Join(DefaultDataDir(), "knowledge")),
		IndexPath:        getEnv("TRIAGE_INDEX_PATH", filepath.Join(DefaultDataDir(), "index.db")),
		ChunkSize:        getEnvInt("TRIAGE_CHUNK_SIZE", 500),
		ChunkOverlap:     getEnvInt("TRIAGE_CHUNK_OVERLAP", 50),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		ChatModel:        getEnv("TRIAGE_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:   getEnv("TRIAGE_EMBEDDING_MODEL", "text-embedding-3-small"),
		LLMTimeout:       getEnvDuration("TRIAGE_LLM_TIMEOUT", 30*time.Second),
		LLMMaxRetries:    getEnvInt("TRIAGE_LLM_MAX_RETRIES", 1),
		RetryDelay:       getEnvDuration("TRIAGE_RETRY_DELAY", 2*time.Second),
		RetrievalK:       getEnvInt("TRIAGE_RETRIEVAL_K", 5),
		MinScore:         getEnvFloat("TRIAGE_MIN_SCORE", 0),
		MaxContextChunks: getEnvInt("TRIAGE_MAX_CONTEXT_CHUNKS", 3),
		EmbedConcurrency: getEnvInt("TRIAGE_EMBED_CONCURRENCY", 4),
	}

	return cfg, cfg.Validate()
}

// Validate rejects parameter combinations the engine cannot run with.
// Invalid chunking or retrieval parameters are fatal, never clamped.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("TRIAGE_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("TRIAGE_CHUNK_OVERLAP must be zero or greater, got %d", c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("TRIAGE_CHUNK_OVERLAP (%d) must be smaller than TRIAGE_CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize)
	}
	if c.RetrievalK <= 0 {
		return fmt.Errorf("TRIAGE_RETRIEVAL_K must be positive, got %d", c.RetrievalK)
	}
	if c.MinScore < -1 || c.MinScore > 1 {
		return fmt.Errorf("TRIAGE_MIN_SCORE must be in [-1, 1], got %f", c.MinScore)
	}
	if c.LLMMaxRetries < 0 || c.LLMMaxRetries > 10 {
		return fmt.Errorf("TRIAGE_LLM_MAX_RETRIES must be 0-10, got %d", c.LLMMaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("TRIAGE_RETRY_DELAY must be zero or greater, got %v", c.RetryDelay)
	}
	if c.MaxContextChunks <= 0 {
		return fmt.Errorf("TRIAGE_MAX_CONTEXT_CHUNKS must be positive, got %d", c.MaxContextChunks)
	}
	if c.EmbedConcurrency <= 0 {
		return fmt.Errorf("TRIAGE_EMBED_CONCURRENCY must be positive, got %d", c.EmbedConcurrency)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
