// Package pdf extracts readable text from text-based PDF uploads.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	pdfreader "github.com/ledongthuc/pdf"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const (
	// DefaultMaxBytes is the upload limit used when none is configured.
	DefaultMaxBytes = 10 << 20

	// minTextRunes tells a text PDF from a scanned one.
	minTextRunes = 100
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n\s*`)
	blankRun       = regexp.MustCompile(`[ \t]+`)
)

// Document is the text extracted from an upload.
type Document struct {
	Text  string
	Pages int
}

// Extractor reads the text layer of PDF files.
type Extractor struct {
	maxBytes int64
}

// New creates an Extractor. A non-positive maxBytes defaults to 10 MiB.
func New(maxBytes int64) *Extractor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Extractor{maxBytes: maxBytes}
}

// MaxBytes returns the upload limit.
func (e *Extractor) MaxBytes() int64 { return e.maxBytes }

// Extract returns the cleaned text of data. Oversized, unreadable and
// scanned documents are reported as validation errors on "file".
func (e *Extractor) Extract(ctx context.Context, data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, domain.NewValidationError("file", "required")
	}
	if int64(len(data)) > e.maxBytes {
		return Document{}, domain.NewValidationError("file", fmt.Sprintf("exceeds %d bytes", e.maxBytes))
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return Document{}, domain.NewValidationError("file", "not a PDF document")
	}

	raw, pages, err := readText(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, ctx.Err()
		}
		return Document{}, domain.NewValidationError("file", "PDF could not be parsed")
	}

	raw = strings.TrimSpace(raw)
	if utf8.RuneCountInString(raw) < minTextRunes {
		return Document{}, domain.NewValidationError("file", "scanned PDFs are not supported, upload a text PDF or paste the text")
	}

	return Document{Text: CleanText(raw), Pages: pages}, nil
}

func readText(ctx context.Context, data []byte) (text string, pages int, err error) {
	// The parser panics on some malformed documents.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: %v", r)
		}
	}()

	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("pdf reader: %w", err)
	}

	var b strings.Builder
	n := r.NumPage()
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, err := p.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.String(), n, nil
}

// CleanText joins wrapped lines. Hyphenated line ends are rejoined, a single
// newline becomes a space and a blank line separates paragraphs.
func CleanText(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "-\n", "")

	var paragraphs []string
	for _, p := range paragraphBreak.Split(raw, -1) {
		p = strings.ReplaceAll(p, "\n", " ")
		p = strings.TrimSpace(blankRun.ReplaceAllString(p, " "))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}
