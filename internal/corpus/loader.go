// ABOUTME: Corpus loader reading plain-text and PDF knowledge files
// ABOUTME: PDF extraction shells out to pdftotext through a CommandRunner seam
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openclinic/triage/internal/models"
)

// CommandRunner executes an external command and returns its stdout.
// Seam for tests; production uses the real pdftotext binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader reads a corpus directory into Documents. Only .txt and .pdf files
// are considered; anything else in the directory is ignored.
type Loader struct {
	root   string
	runner CommandRunner
}

// NewLoader creates a Loader over the given corpus directory
func NewLoader(root string) *Loader {
	return &Loader{root: root, runner: execRunner{}}
}

// NewLoaderWithRunner creates a Loader with a custom command runner
func NewLoaderWithRunner(root string, runner CommandRunner) *Loader {
	return &Loader{root: root, runner: runner}
}

// Load walks the corpus directory and returns extracted documents in
// path order, so repeated loads of an unchanged corpus are identical.
func (l *Loader) Load(ctx context.Context) ([]models.Document, error) {
	var paths []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".pdf":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus %s: %w", l.root, err)
	}
	sort.Strings(paths)

	var docs []models.Document
	for _, path := range paths {
		doc, err := l.loadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		if doc.RawText() == "" {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// loadFile extracts one file into a Document
func (l *Loader) loadFile(ctx context.Context, path string) (models.Document, error) {
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		pages, err := l.extractPDF(ctx, path)
		if err != nil {
			return models.Document{}, fmt.Errorf("extract pdf %s: %w", path, err)
		}
		return models.Document{
			ID:         id,
			SourcePath: path,
			Kind:       models.DocumentKindPDF,
			Pages:      pages,
		}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Document{}, fmt.Errorf("read corpus file %s: %w", path, err)
	}
	return models.Document{
		ID:         id,
		SourcePath: path,
		Kind:       models.DocumentKindText,
		Pages:      []models.Page{{Number: 0, Text: strings.TrimSpace(string(raw))}},
	}, nil
}

// extractPDF converts a PDF to per-page text. pdftotext separates pages
// with form feeds; page numbers are 1-based to match reader expectations.
func (l *Loader) extractPDF(ctx context.Context, path string) ([]models.Page, error) {
	out, err := l.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	var pages []models.Page
	for i, text := range strings.Split(string(out), "\f") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, models.Page{Number: i + 1, Text: text})
	}
	return pages, nil
}
