// ABOUTME: Embedding models for vector storage and similarity search
// ABOUTME: Defines Embedding, ChunkMetadata and VectorSearchResult structures
package models

import "time"

// Embedding is a stored vector for a chunk of corpus text
type Embedding struct {
	ChunkID   string    `json:"chunk_id"`
	Vector    []float64 `json:"vector"`
	CreatedAt time.Time `json:"created_at"`
}

// ChunkMetadata travels with a vector into the index so retrieval
// results can be traced back to their source document.
type ChunkMetadata struct {
	DocumentID     string `json:"document_id"`
	DocumentSource string `json:"document_source"`
	Section        string `json:"section,omitempty"`
	Text           string `json:"text"`
	PageStart      int    `json:"page_start"`
	PageEnd        int    `json:"page_end"`
}

// VectorSearchResult is one index hit with its similarity score
type VectorSearchResult struct {
	ChunkID  string        `json:"chunk_id"`
	Score    float64       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

// RetrievalResult is a scored chunk returned to the analysis pipeline
type RetrievalResult struct {
	ChunkID        string  `json:"chunk_id"`
	Text           string  `json:"text"`
	Score          float64 `json:"score"`
	DocumentSource string  `json:"document_source"`
	Section        string  `json:"section,omitempty"`
}
