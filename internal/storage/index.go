// ABOUTME: VectorIndex port shared by the in-memory and SQLite index backends
// ABOUTME: Defines cosine similarity and deterministic result ordering
package storage

import (
	"math"
	"sort"

	"github.com/openclinic/triage/internal/models"
)

// VectorIndex stores (chunk, vector, metadata) entries and serves
// k-nearest-neighbor similarity search. Implementations synchronize
// internally; callers never take external locks.
type VectorIndex interface {
	// Upsert replaces any existing entry for chunkID. A search issued
	// immediately after Upsert in the same process reflects the update.
	Upsert(chunkID string, vector []float64, meta models.ChunkMetadata) error

	// Search returns up to k entries sorted by descending cosine score,
	// ties broken by ascending chunk id. An empty index returns an empty
	// slice, never an error.
	Search(query []float64, k int) ([]models.VectorSearchResult, error)

	// Clear empties the index, including its recorded model id.
	Clear() error

	// Count reports the number of stored entries.
	Count() (int, error)

	// ModelID returns the embedding model recorded at build time, or ""
	// if the index has never been built.
	ModelID() (string, error)

	// SetModelID records the embedding model the index was built with.
	SetModelID(id string) error

	Close() error
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Mismatched dimensions or zero vectors score 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SortResults orders search results by descending score, breaking ties by
// ascending chunk id so result order is deterministic across rebuilds.
func SortResults(results []models.VectorSearchResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ChunkID < results[j].ChunkID
	})
}
