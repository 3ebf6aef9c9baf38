// ABOUTME: SQLite schema for the persistent vector index
// ABOUTME: Vectors table plus a key-value metadata table for build provenance
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Vectors table: one row per indexed chunk
CREATE TABLE IF NOT EXISTS vectors (
    chunk_id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL,
    document_source TEXT NOT NULL,
    section TEXT,
    text TEXT NOT NULL,
    page_start INTEGER DEFAULT 0,
    page_end INTEGER DEFAULT 0,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Index metadata: embedding model id recorded at build time, etc.
CREATE TABLE IF NOT EXISTS index_meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vectors_document ON vectors(document_id);
`

// metaModelID is the index_meta key holding the build-time embedding model
const metaModelID = "embedding_model_id"
