// ABOUTME: Tests for the corpus loader
// ABOUTME: PDF extraction is exercised through a stub command runner
package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openclinic/triage/internal/models"
)

// stubRunner replays canned pdftotext output
type stubRunner struct {
	output []byte
	err    error
	calls  [][]string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	s.calls = append(s.calls, append([]string{name}, args...))
	return s.output, s.err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_TextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "fever.txt", "Fever\nRest and fluids help.\n")
	writeFile(t, dir, "notes.md", "ignored markdown")

	loader := NewLoader(dir)
	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1 (.md ignored)", len(docs))
	}
	doc := docs[0]
	if doc.ID != "fever" {
		t.Errorf("ID = %q, want fever", doc.ID)
	}
	if doc.Kind != models.DocumentKindText {
		t.Errorf("Kind = %q, want text", doc.Kind)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].Number != 0 {
		t.Errorf("Pages = %+v, want single page 0", doc.Pages)
	}
	if doc.RawText() != "Fever\nRest and fluids help." {
		t.Errorf("RawText = %q", doc.RawText())
	}
}

func TestLoad_SortedByPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "zoster.txt", "Shingles\ntext")
	writeFile(t, dir, "asthma.txt", "Asthma\ntext")

	loader := NewLoader(dir)
	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 2 || docs[0].ID != "asthma" || docs[1].ID != "zoster" {
		ids := make([]string, len(docs))
		for i, d := range docs {
			ids[i] = d.ID
		}
		t.Errorf("document order = %v, want [asthma zoster]", ids)
	}
}

func TestLoad_SkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   \n\t\n")
	writeFile(t, dir, "real.txt", "Content\ntext")

	loader := NewLoader(dir)
	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "real" {
		t.Errorf("got %d documents, want only the non-empty one", len(docs))
	}
}

func TestLoad_PDFPages(t *testing.T) {
	dir := t.TempDir()
	pdfPath := writeFile(t, dir, "manual.pdf", "%PDF-1.4 fake")

	runner := &stubRunner{output: []byte("first page text\fsecond page text\f")}
	loader := NewLoaderWithRunner(dir, runner)

	docs, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	doc := docs[0]
	if doc.Kind != models.DocumentKindPDF {
		t.Errorf("Kind = %q, want pdf", doc.Kind)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(doc.Pages))
	}
	if doc.Pages[0].Number != 1 || doc.Pages[1].Number != 2 {
		t.Errorf("page numbers = (%d, %d), want (1, 2)", doc.Pages[0].Number, doc.Pages[1].Number)
	}
	if doc.Pages[0].Text != "first page text" {
		t.Errorf("page 1 text = %q", doc.Pages[0].Text)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("runner called %d times, want 1", len(runner.calls))
	}
	call := runner.calls[0]
	want := []string{"pdftotext", "-layout", pdfPath, "-"}
	for i := range want {
		if call[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, call[i], want[i])
		}
	}
}

func TestLoad_PDFExtractionError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.pdf", "%PDF-1.4 fake")

	runner := &stubRunner{err: errors.New("pdftotext: command not found")}
	loader := NewLoaderWithRunner(dir, runner)

	if _, err := loader.Load(context.Background()); err == nil {
		t.Error("expected error when pdf extraction fails")
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := loader.Load(context.Background()); err == nil {
		t.Error("expected error for missing corpus directory")
	}
}
