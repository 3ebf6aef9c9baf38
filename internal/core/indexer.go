// ABOUTME: Indexer ingests the knowledge corpus into the vector index
// ABOUTME: Full rebuilds with bounded-concurrency embedding and per-document failure isolation
package core

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/openclinic/triage/internal/models"
	"github.com/openclinic/triage/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Indexer builds the vector index from a corpus snapshot. Every build is
// a full rebuild: the index is cleared first so chunks and documents can
// never drift apart.
type Indexer struct {
	chunker     *Chunker
	provider    EmbeddingProvider
	index       storage.VectorIndex
	concurrency int
}

// NewIndexer creates an Indexer. Concurrency bounds how many documents
// embed in parallel so the embedding service is not overwhelmed.
func NewIndexer(chunker *Chunker, provider EmbeddingProvider, index storage.VectorIndex, concurrency int) (*Indexer, error) {
	if concurrency <= 0 {
		return nil, fmt.Errorf("%w: embed concurrency must be positive, got %d", ErrConfiguration, concurrency)
	}
	return &Indexer{
		chunker:     chunker,
		provider:    provider,
		index:       index,
		concurrency: concurrency,
	}, nil
}

// Build chunks, embeds, and upserts every document. A failure embedding
// one document drops only that document's contribution; the report lists
// each failed document so partial rebuilds are observable, not silent.
func (ix *Indexer) Build(ctx context.Context, docs []models.Document) (*models.IndexBuildReport, error) {
	start := time.Now()

	if err := ix.index.Clear(); err != nil {
		return nil, fmt.Errorf("clear index: %w", err)
	}
	if err := ix.index.SetModelID(ix.provider.ModelID()); err != nil {
		return nil, fmt.Errorf("record embedding model: %w", err)
	}
	log.Printf("[indexer] rebuilding index: %d documents, model %s", len(docs), ix.provider.ModelID())

	var (
		mu       sync.Mutex
		chunks   int
		failures []models.BuildFailure
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.concurrency)

	for _, doc := range docs {
		g.Go(func() error {
			n, err := ix.indexDocument(gctx, &doc)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, models.BuildFailure{
					DocumentID: doc.ID,
					SourcePath: doc.SourcePath,
					Error:      err.Error(),
				})
				log.Printf("[indexer] document %s failed: %v", doc.ID, err)
				return nil
			}
			chunks += n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].DocumentID < failures[j].DocumentID })

	report := &models.IndexBuildReport{
		DocumentsProcessed: len(docs) - len(failures),
		ChunksIndexed:      chunks,
		DurationMs:         time.Since(start).Milliseconds(),
		Failures:           failures,
	}
	log.Printf("[indexer] build complete: %d chunks from %d documents in %dms (%d failed)",
		report.ChunksIndexed, report.DocumentsProcessed, report.DurationMs, len(failures))
	return report, nil
}

// indexDocument chunks and embeds one document, then upserts every chunk
func (ix *Indexer) indexDocument(ctx context.Context, doc *models.Document) (int, error) {
	chunks := ix.chunker.Chunk(doc)
	if len(chunks) == 0 {
		return 0, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := ix.provider.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: embed %d chunks: %v", ErrProvider, len(chunks), err)
	}

	for i, c := range chunks {
		meta := models.ChunkMetadata{
			DocumentID:     c.DocumentID,
			DocumentSource: doc.SourcePath,
			Section:        c.Section,
			Text:           c.Text,
			PageStart:      c.PageStart,
			PageEnd:        c.PageEnd,
		}
		if err := ix.index.Upsert(c.ChunkID, vectors[i], meta); err != nil {
			return 0, fmt.Errorf("upsert chunk %s: %w", c.ChunkID, err)
		}
	}
	return len(chunks), nil
}
