// Package webpage imports readable article text from web pages.
package webpage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const userAgent = "Mozilla/5.0 (compatible; reading-copilot/1.0; +https://github.com/heartmarshall/reading-copilot)"

// Article is the readable part of a fetched page.
type Article struct {
	URL      string
	Title    string
	Byline   string
	SiteName string
	Text     string
}

// Fetcher downloads a page with a size limit and extracts its article.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates a Fetcher. A non-positive maxBytes defaults to 5 MiB.
func New(timeout time.Duration, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads rawURL and extracts the article. Problems caused by the
// URL or the page itself are returned as validation errors on "url".
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Article, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Article{}, domain.NewValidationError("url", "must be an absolute http(s) URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Article{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Article{}, ctx.Err()
		}
		return Article{}, domain.NewValidationError("url", "page could not be fetched")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, domain.NewValidationError("url", fmt.Sprintf("page returned status %d", resp.StatusCode))
	}
	if resp.ContentLength > f.maxBytes {
		return Article{}, domain.NewValidationError("url", fmt.Sprintf("page exceeds %d bytes", f.maxBytes))
	}

	// One extra byte tells a page of exactly maxBytes from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return Article{}, fmt.Errorf("read page: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return Article{}, domain.NewValidationError("url", fmt.Sprintf("page exceeds %d bytes", f.maxBytes))
	}

	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		return Article{}, domain.NewValidationError("url", "no readable article found")
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return Article{}, domain.NewValidationError("url", "no readable article found")
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = u.Host
	}

	return Article{
		URL:      u.String(),
		Title:    title,
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Text:     text,
	}, nil
}
