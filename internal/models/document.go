// ABOUTME: Document is one loaded corpus file, split into pages
// ABOUTME: Plain-text files carry a single page; PDFs carry one page per sheet
package models

import "strings"

// DocumentKind identifies how a corpus file was extracted
type DocumentKind string

const (
	DocumentKindText DocumentKind = "text"
	DocumentKindPDF  DocumentKind = "pdf"
)

// Page is one page of extracted document text. Plain-text documents use
// page number 0; PDF pages are numbered from 1.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Document is a corpus file ready for chunking
type Document struct {
	ID         string       `json:"id"`
	SourcePath string       `json:"source_path"`
	Kind       DocumentKind `json:"kind"`
	Pages      []Page       `json:"pages"`
}

// RawText joins all page text in page order
func (d *Document) RawText() string {
	texts := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}
