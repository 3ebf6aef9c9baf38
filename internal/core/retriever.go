// ABOUTME: Retriever embeds a query and returns the top-K most relevant chunks
// ABOUTME: Rejects queries against an index built with a different embedding model
package core

import (
	"context"
	"fmt"

	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
)

// Retriever serves similarity search over the vector index
type Retriever struct {
	provider EmbeddingProvider
	index    storage.VectorIndex
	k        int
	minScore float64
}

// NewRetriever validates retrieval parameters and returns a Retriever.
// minScore of 0 disables the score floor.
func NewRetriever(provider EmbeddingProvider, index storage.VectorIndex, k int, minScore float64) (*Retriever, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: retrieval k must be positive, got %d", ErrConfiguration, k)
	}
	if minScore < -1 || minScore > 1 {
		return nil, fmt.Errorf("%w: min score must be in [-1, 1], got %f", ErrConfiguration, minScore)
	}
	return &Retriever{provider: provider, index: index, k: k, minScore: minScore}, nil
}

// Retrieve returns up to k scored chunks for the query text, best first.
// An empty index yields an empty slice; the caller treats that as "no
// grounding available", not as an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]models.RetrievalResult, error) {
	count, err := r.index.Count()
	if err != nil {
		return nil, fmt.Errorf("index count: %w", err)
	}
	if count == 0 {
		return []models.RetrievalResult{}, nil
	}

	builtWith, err := r.index.ModelID()
	if err != nil {
		return nil, fmt.Errorf("index model id: %w", err)
	}
	if builtWith != "" && builtWith != r.provider.ModelID() {
		return nil, fmt.Errorf("%w: index built with %q, query embedding uses %q",
			ErrIndexMismatch, builtWith, r.provider.ModelID())
	}

	vector, err := r.provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrProvider, err)
	}

	hits, err := r.index.Search(vector, r.k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	results := make([]models.RetrievalResult, 0, len(hits))
	for _, hit := range hits {
		if r.minScore != 0 && hit.Score < r.minScore {
			continue
		}
		results = append(results, models.RetrievalResult{
			ChunkID:        hit.ChunkID,
			Text:           hit.Metadata.Text,
			Score:          hit.Score,
			DocumentSource: hit.Metadata.DocumentSource,
			Section:        hit.Metadata.Section,
		})
	}
	return results, nil
}
