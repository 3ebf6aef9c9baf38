// ABOUTME: SQLite-backed VectorIndex implementing upsert, search, and clear
// ABOUTME: Stores vectors as little-endian float64 BLOBs with chunk metadata
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
)

// Index is a persistent VectorIndex over a SQLite database. database/sql
// serializes access internally, so concurrent readers are safe while the
// indexer runs its upsert sequence.
type Index struct {
	db *DB
}

// NewIndex wraps an open database as a VectorIndex
func NewIndex(db *DB) *Index {
	return &Index{db: db}
}

// Upsert replaces any existing entry for chunkID
func (idx *Index) Upsert(chunkID string, vector []float64, meta models.ChunkMetadata) error {
	_, err := idx.db.Exec(`
		INSERT INTO vectors (chunk_id, document_id, document_source, section, text, page_start, page_end, vector)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			document_id = excluded.document_id,
			document_source = excluded.document_source,
			section = excluded.section,
			text = excluded.text,
			page_start = excluded.page_start,
			page_end = excluded.page_end,
			vector = excluded.vector
	`, chunkID, meta.DocumentID, meta.DocumentSource, meta.Section, meta.Text, meta.PageStart, meta.PageEnd, vectorToBlob(vector))

	if err != nil {
		return fmt.Errorf("upsert vector %s: %w", chunkID, err)
	}
	return nil
}

// Search performs a brute-force cosine similarity scan. Results are sorted
// by descending score with ascending-chunk-id tie breaks; an empty index
// yields an empty slice.
func (idx *Index) Search(query []float64, k int) ([]models.VectorSearchResult, error) {
	rows, err := idx.db.Query(`
		SELECT chunk_id, document_id, document_source, section, text, page_start, page_end, vector
		FROM vectors
	`)
	if err != nil {
		return nil, fmt.Errorf("scan vectors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []models.VectorSearchResult{}
	for rows.Next() {
		var (
			chunkID string
			meta    models.ChunkMetadata
			section sql.NullString
			blob    []byte
		)
		if err := rows.Scan(&chunkID, &meta.DocumentID, &meta.DocumentSource, &section, &meta.Text, &meta.PageStart, &meta.PageEnd, &blob); err != nil {
			return nil, err
		}
		if section.Valid {
			meta.Section = section.String
		}

		results = append(results, models.VectorSearchResult{
			ChunkID:  chunkID,
			Score:    storage.CosineSimilarity(query, blobToVector(blob)),
			Metadata: meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	storage.SortResults(results)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Clear empties the index and its metadata ahead of a full rebuild
func (idx *Index) Clear() error {
	if _, err := idx.db.Exec("DELETE FROM vectors"); err != nil {
		return fmt.Errorf("clear vectors: %w", err)
	}
	if _, err := idx.db.Exec("DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("clear index metadata: %w", err)
	}
	return nil
}

// Count reports the number of stored entries
func (idx *Index) Count() (int, error) {
	var count int
	err := idx.db.QueryRow("SELECT COUNT(*) FROM vectors").Scan(&count)
	return count, err
}

// ModelID returns the embedding model recorded at build time
func (idx *Index) ModelID() (string, error) {
	var id string
	err := idx.db.QueryRow("SELECT value FROM index_meta WHERE key = ?", metaModelID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

// SetModelID records the embedding model the index was built with
func (idx *Index) SetModelID(id string) error {
	_, err := idx.db.Exec(`
		INSERT INTO index_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaModelID, id)
	return err
}

// Close closes the underlying database
func (idx *Index) Close() error {
	return idx.db.Close()
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
