package reading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// ErrImportDisabled is returned when no article fetcher or PDF extractor is
// configured.
var ErrImportDisabled = errors.New("article import is not configured")

type webImport struct {
	WebImport webImportMeta `json:"web_import"`
}

type webImportMeta struct {
	URL      string `json:"url"`
	SiteName string `json:"site_name,omitempty"`
	Byline   string `json:"byline,omitempty"`
}

// ImportFromURL fetches an article and stores it as a new text titled by the
// article title.
func (s *Service) ImportFromURL(ctx context.Context, input ImportInput) (*domain.Text, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.fetcher == nil {
		return nil, ErrImportDisabled
	}

	article, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}

	scaffolding, err := json.Marshal(webImport{WebImport: webImportMeta{
		URL:      article.URL,
		SiteName: article.SiteName,
		Byline:   article.Byline,
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal scaffolding: %w", err)
	}

	text, err := s.CreateText(ctx, CreateTextInput{
		Title:           truncateRunes(article.Title, maxTitleLength),
		Content:         article.Text,
		ScaffoldingData: scaffolding,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "article imported",
		slog.Int64("text_id", text.ID),
		slog.String("url", article.URL),
	)
	return text, nil
}

type pdfImport struct {
	PDFImport pdfImportMeta `json:"pdf_import"`
}

type pdfImportMeta struct {
	Filename  string `json:"filename"`
	Pages     int    `json:"pages"`
	Truncated bool   `json:"truncated,omitempty"`
}

// ImportPDF extracts the text layer of an uploaded PDF and stores it as a new
// text. Its blank-line paragraphs are kept as extracted; text beyond the
// content limit is cut off.
func (s *Service) ImportPDF(ctx context.Context, input ImportPDFInput) (*domain.Text, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if s.pdf == nil {
		return nil, ErrImportDisabled
	}

	doc, err := s.pdf.Extract(ctx, input.Data)
	if err != nil {
		return nil, fmt.Errorf("extract pdf: %w", err)
	}

	content, truncated := truncateBytes(doc.Text, maxContentLength)
	filename := baseName(input.Filename)

	scaffolding, err := json.Marshal(pdfImport{PDFImport: pdfImportMeta{
		Filename:  filename,
		Pages:     doc.Pages,
		Truncated: truncated,
	}})
	if err != nil {
		return nil, fmt.Errorf("marshal scaffolding: %w", err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = strings.TrimSpace(filename[:len(filename)-len(".pdf")])
	}
	if title == "" {
		title = "Untitled PDF"
	}

	text, err := s.CreateText(ctx, CreateTextInput{
		Title:           truncateRunes(title, maxTitleLength),
		Content:         content,
		ScaffoldingData: scaffolding,
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "pdf imported",
		slog.Int64("text_id", text.ID),
		slog.String("filename", filename),
		slog.Int("pages", doc.Pages),
		slog.Bool("truncated", truncated),
	)
	return text, nil
}

// baseName drops any client-side directory from an upload name.
func baseName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// truncateBytes cuts s to at most n bytes on a rune boundary.
func truncateBytes(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return strings.TrimSpace(s[:n]), true
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
