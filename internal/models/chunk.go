// ABOUTME: Chunk is a token-bounded slice of a document used as the retrieval unit
// ABOUTME: Derived deterministically from a Document by the chunker
package models

// Chunk is a contiguous, token-bounded slice of a source document
type Chunk struct {
	ChunkID         string `json:"chunk_id"`
	DocumentID      string `json:"document_id"`
	SequenceIndex   int    `json:"sequence_index"`
	Section         string `json:"section,omitempty"`
	Text            string `json:"text"`
	TokenCount      int    `json:"token_count"`
	OverlapWithPrev int    `json:"overlap_with_prev"`
	PageStart       int    `json:"page_start"`
	PageEnd         int    `json:"page_end"`
}
