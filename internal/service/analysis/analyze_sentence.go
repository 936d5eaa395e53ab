package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/adapter/cache"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/resilience"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// Source tells where an analysis result came from.
type Source string

const (
	SourceSkipped Source = "skipped"
	SourceCache   Source = "cache"
	SourceAI      Source = "ai"
)

// Metric statuses of an analysis attempt.
const (
	statusSkipped     = "skipped"
	statusCache       = "cached"
	statusOK          = "ok"
	statusRateLimited = "rate_limited"
	statusInvalid     = "invalid"
	statusUnavailable = "unavailable"
	statusError       = "error"
)

// AnalyzeInput selects the sentence to analyze. Force re-analyzes a sentence
// that already carries a complete analysis.
type AnalyzeInput struct {
	SentenceID int64
	Force      bool
}

// AnalyzeResult is the stored sentence after analysis.
type AnalyzeResult struct {
	Sentence *domain.Sentence
	Source   Source
}

// AnalyzeSentence fills a sentence's translation and analysis, from the cache
// when possible and from the AI collaborator otherwise.
func (s *Service) AnalyzeSentence(ctx context.Context, input AnalyzeInput) (*AnalyzeResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if input.SentenceID <= 0 {
		return nil, domain.NewValidationError("sentence_id", "required")
	}

	sentence, err := s.sentences.GetByID(ctx, userID, input.SentenceID)
	if err != nil {
		return nil, fmt.Errorf("get sentence: %w", err)
	}

	return s.analyze(ctx, userID, sentence, input.Force)
}

// analyze deduplicates concurrent requests for the same sentence. Callers
// that join an in-flight analysis share its result.
func (s *Service) analyze(ctx context.Context, userID uuid.UUID, sentence *domain.Sentence, force bool) (*AnalyzeResult, error) {
	if !force && sentence.IsAnalyzed() {
		s.recordAnalysis(ctx, statusSkipped, 0)
		return &AnalyzeResult{Sentence: sentence, Source: SourceSkipped}, nil
	}

	key := strconv.FormatInt(sentence.ID, 10)
	ch := s.inflight.DoChan(key, func() (any, error) {
		// The shared call must outlive the caller that started it.
		return s.analyzeOnce(context.WithoutCancel(ctx), userID, sentence)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*AnalyzeResult), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Service) analyzeOnce(ctx context.Context, userID uuid.UUID, sentence *domain.Sentence) (*AnalyzeResult, error) {
	if entry, ok := s.cached(ctx, sentence.Content); ok {
		updated, err := s.persist(ctx, userID, sentence.ID, entry.Translation, entry.Analysis)
		if err != nil {
			return nil, err
		}
		s.recordAnalysis(ctx, statusCache, 0)
		return &AnalyzeResult{Sentence: updated, Source: SourceCache}, nil
	}

	if err := s.limiter.Allow(userID.String()); err != nil {
		s.recordAnalysis(ctx, statusRateLimited, 0)
		return nil, err
	}

	start := time.Now()
	raw, err := s.ai.Complete(ctx, ai.SystemPrompt, sentence.Content)
	if err != nil {
		status := statusError
		if errors.Is(err, resilience.ErrCircuitOpen) {
			status = statusUnavailable
		}
		s.recordAnalysis(ctx, status, time.Since(start))
		return nil, fmt.Errorf("complete analysis: %w", err)
	}

	result, err := ai.Parse(raw)
	if err != nil {
		s.recordAnalysis(ctx, statusInvalid, time.Since(start))
		s.log.WarnContext(ctx, "analysis response could not be parsed",
			slog.Int64("sentence_id", sentence.ID),
			slog.Int("raw_length", len(raw)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("parse analysis: %w", err)
	}
	s.recordAnalysis(ctx, statusOK, time.Since(start))

	analysis := result.Analysis()
	updated, err := s.persist(ctx, userID, sentence.ID, result.Translation, analysis)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		entry := cache.Entry{Translation: result.Translation, Analysis: analysis}
		if err := s.cache.Set(ctx, sentence.Content, entry); err != nil {
			s.log.WarnContext(ctx, "analysis cache write failed", slog.String("error", err.Error()))
		}
	}

	s.log.InfoContext(ctx, "sentence analyzed",
		slog.Int64("sentence_id", sentence.ID),
		slog.Int("knowledge_items", len(analysis.Knowledge)),
		slog.Duration("duration", time.Since(start)),
	)

	return &AnalyzeResult{Sentence: updated, Source: SourceAI}, nil
}

func (s *Service) cached(ctx context.Context, content string) (cache.Entry, bool) {
	if s.cache == nil {
		return cache.Entry{}, false
	}
	entry, ok, err := s.cache.Get(ctx, content)
	if err != nil {
		s.log.WarnContext(ctx, "analysis cache read failed", slog.String("error", err.Error()))
		return cache.Entry{}, false
	}
	return entry, ok
}

func (s *Service) persist(ctx context.Context, userID uuid.UUID, id int64, translation string, analysis domain.Analysis) (*domain.Sentence, error) {
	updated, err := s.sentences.Update(ctx, userID, id, domain.SentencePatch{
		Translation: &translation,
		Analysis:    &analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}
	return updated, nil
}
