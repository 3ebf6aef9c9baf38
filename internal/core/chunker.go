// ABOUTME: Chunker splits corpus documents into overlapping token-bounded segments
// ABOUTME: Section-aware for plain text, page-tracking for PDF-origin documents
package core

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/openclinic/triage/internal/models"
)

// SectionSeparator delimits titled sections in plain-text corpus files
const SectionSeparator = "\n====================\n"

// TokenCounter estimates the token length of a piece of text.
// Pluggable independently of the embedding provider.
type TokenCounter func(text string) int

// WordCount is the default token counter, using whitespace-delimited
// words as a proxy for model tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Chunker produces deterministic overlapping chunks. Identical document
// text and parameters always yield byte-identical chunk boundaries.
type Chunker struct {
	size    int
	overlap int
	counter TokenCounter
}

// NewChunker validates chunking parameters and returns a Chunker.
// overlap must be smaller than size; violations fail fast.
func NewChunker(size, overlap int, counter TokenCounter) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must be zero or greater, got %d", ErrConfiguration, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)", ErrConfiguration, overlap, size)
	}
	if counter == nil {
		counter = WordCount
	}
	return &Chunker{size: size, overlap: overlap, counter: counter}, nil
}

// pagedWord is one word of document text tagged with its originating page
type pagedWord struct {
	text string
	page int
}

// Chunk splits a document into ordered chunks. Plain-text documents are
// split on section separators first, with the section title preserved per
// chunk; multi-page documents carry their page span instead.
func (c *Chunker) Chunk(doc *models.Document) []models.Chunk {
	if len(doc.Pages) > 1 {
		return c.chunkPages(doc)
	}
	return c.chunkSections(doc)
}

// chunkSections splits single-page text into titled sections, then chunks
// each section independently. Sections at or under the chunk size stay
// whole, matching the shape of the curated knowledge files.
func (c *Chunker) chunkSections(doc *models.Document) []models.Chunk {
	var chunks []models.Chunk
	seq := 0

	for _, section := range strings.Split(doc.RawText(), SectionSeparator) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}

		title := section
		body := section
		if idx := strings.Index(section, "\n"); idx >= 0 {
			title = strings.TrimSpace(section[:idx])
			body = strings.TrimSpace(section[idx+1:])
		}
		if body == "" {
			body = title
		}

		if c.counter(body) <= c.size {
			chunks = append(chunks, c.newChunk(doc, seq, title, body, 0, 0, 0))
			seq++
			continue
		}

		words := strings.Fields(body)
		for _, p := range c.split(words) {
			text := joinWords(words[p.start:p.end])
			chunks = append(chunks, c.newChunk(doc, seq, title, text, p.overlap, 0, 0))
			seq++
		}
	}

	return chunks
}

// chunkPages chunks a multi-page document as one word stream, recording
// the page span covered by each chunk.
func (c *Chunker) chunkPages(doc *models.Document) []models.Chunk {
	var words []pagedWord
	for _, page := range doc.Pages {
		for _, w := range strings.Fields(page.Text) {
			words = append(words, pagedWord{text: w, page: page.Number})
		}
	}
	if len(words) == 0 {
		return nil
	}

	texts := pagedTexts(words)

	var chunks []models.Chunk
	for seq, p := range c.split(texts) {
		span := words[p.start:p.end]
		chunks = append(chunks, c.newChunk(doc, seq, "",
			joinWords(texts[p.start:p.end]), p.overlap, span[0].page, span[len(span)-1].page))
	}
	return chunks
}

// piece is a half-open word range plus its overlap with the previous piece
type piece struct {
	start, end, overlap int
}

// split walks a word sequence producing size-bounded ranges that share
// exactly the configured overlap; the final range may be shorter. A
// sequence at or under the chunk size yields exactly one range.
func (c *Chunker) split(words []string) []piece {
	if len(words) == 0 {
		return nil
	}
	if len(words) <= c.size {
		return []piece{{start: 0, end: len(words)}}
	}

	step := c.size - c.overlap
	var pieces []piece
	for i := 0; ; i += step {
		end := i + c.size
		if end > len(words) {
			end = len(words)
		}
		overlap := 0
		if i > 0 {
			overlap = c.overlap
		}
		pieces = append(pieces, piece{start: i, end: end, overlap: overlap})
		if end == len(words) {
			return pieces
		}
	}
}

func (c *Chunker) newChunk(doc *models.Document, seq int, section, text string, overlap, pageStart, pageEnd int) models.Chunk {
	return models.Chunk{
		ChunkID:         chunkID(doc.ID, section, seq),
		DocumentID:      doc.ID,
		SequenceIndex:   seq,
		Section:         section,
		Text:            text,
		TokenCount:      c.counter(text),
		OverlapWithPrev: overlap,
		PageStart:       pageStart,
		PageEnd:         pageEnd,
	}
}

// chunkID derives a stable id so rebuilds of an unchanged corpus produce
// identical chunk identifiers.
func chunkID(docID, section string, seq int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%d", docID, section, seq)))
	return fmt.Sprintf("chunk_%x", sum[:12])
}

func joinWords(words []string) string {
	return strings.Join(words, " ")
}

func pagedTexts(words []pagedWord) []string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.text
	}
	return texts
}
