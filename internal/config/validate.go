package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Analysis.validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	if err := c.Reader.validate(); err != nil {
		return fmt.Errorf("reader: %w", err)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}
	if c.LLM.Enabled() && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.api_key is set")
	}
	return nil
}

func (a *AuthConfig) validate() error {
	if a.Required || a.JWTSecret != "" {
		if len(a.JWTSecret) < 32 {
			return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
		}
	}
	if !a.Required {
		if _, err := uuid.Parse(a.DevUserID); err != nil {
			return fmt.Errorf("dev_user_id must be a UUID: %w", err)
		}
	}
	return nil
}

func (a *AnalysisConfig) validate() error {
	if a.RateLimitMax <= 0 {
		return fmt.Errorf("rate_limit_max must be > 0 (got %d)", a.RateLimitMax)
	}
	if a.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit_window must be > 0 (got %v)", a.RateLimitWindow)
	}
	if a.BatchConcurrency <= 0 {
		return fmt.Errorf("batch_concurrency must be > 0 (got %d)", a.BatchConcurrency)
	}
	if a.BreakerMaxFailures <= 0 {
		return fmt.Errorf("breaker_max_failures must be > 0 (got %d)", a.BreakerMaxFailures)
	}
	return nil
}

func (r *ReaderConfig) validate() error {
	if !domain.VocabLevel(r.DefaultVocabLevel).IsValid() {
		return fmt.Errorf("default_vocab_level must be one of A1..C2 (got %q)", r.DefaultVocabLevel)
	}
	if !domain.ScaffoldLevel(r.DefaultScaffoldLevel).IsValid() {
		return fmt.Errorf("default_scaffold_level must be 1..3 (got %d)", r.DefaultScaffoldLevel)
	}
	if !domain.ReadingMode(r.DefaultReadingMode).IsValid() {
		return fmt.Errorf("default_reading_mode must be flow or learn (got %q)", r.DefaultReadingMode)
	}
	if r.MaxPageSize <= 0 {
		return fmt.Errorf("max_page_size must be > 0 (got %d)", r.MaxPageSize)
	}
	if r.PageSize <= 0 || r.PageSize > r.MaxPageSize {
		return fmt.Errorf("page_size must be within 1..%d (got %d)", r.MaxPageSize, r.PageSize)
	}
	if r.PDFMaxBytes < 0 {
		return fmt.Errorf("pdf_max_bytes must be >= 0 (got %d)", r.PDFMaxBytes)
	}
	return nil
}
