// ABOUTME: In-memory VectorIndex for tests and ephemeral runs
// ABOUTME: RWMutex guarded so readers stay safe during upsert sequences
package storage

import (
	"sync"
	"time"

	"github.com/openclinic/triage/internal/models"
)

// MemoryIndex is a map-backed VectorIndex. Not persistent; used by tests
// and as a fallback when no index path is configured.
type MemoryIndex struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	modelID string
}

type memoryEntry struct {
	embedding models.Embedding
	meta      models.ChunkMetadata
}

// NewMemoryIndex creates an empty in-memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{entries: make(map[string]memoryEntry)}
}

// Upsert replaces any existing entry for chunkID
func (m *MemoryIndex) Upsert(chunkID string, vector []float64, meta models.ChunkMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]float64, len(vector))
	copy(copied, vector)
	m.entries[chunkID] = memoryEntry{
		embedding: models.Embedding{ChunkID: chunkID, Vector: copied, CreatedAt: time.Now()},
		meta:      meta,
	}
	return nil
}

// Search scores every entry against the query vector
func (m *MemoryIndex) Search(query []float64, k int) ([]models.VectorSearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]models.VectorSearchResult, 0, len(m.entries))
	for chunkID, entry := range m.entries {
		results = append(results, models.VectorSearchResult{
			ChunkID:  chunkID,
			Score:    CosineSimilarity(query, entry.embedding.Vector),
			Metadata: entry.meta,
		})
	}

	SortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Clear drops all entries and the recorded model id
func (m *MemoryIndex) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)
	m.modelID = ""
	return nil
}

// Count reports the number of stored entries
func (m *MemoryIndex) Count() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// ModelID returns the recorded embedding model id
func (m *MemoryIndex) ModelID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modelID, nil
}

// SetModelID records the embedding model the index was built with
func (m *MemoryIndex) SetModelID(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelID = id
	return nil
}

// Close is a no-op for the in-memory index
func (m *MemoryIndex) Close() error {
	return nil
}
