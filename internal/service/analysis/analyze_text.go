package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// BatchResult reports the outcome of analyzing a whole text. Pending counts
// sentences left untouched because the batch stopped early.
type BatchResult struct {
	Total       int           `json:"total"`
	Skipped     int           `json:"skipped"`
	Analyzed    int           `json:"analyzed"`
	Cached      int           `json:"cached"`
	Failed      int           `json:"failed"`
	Pending     int           `json:"pending"`
	RateLimited bool          `json:"rate_limited"`
	RetryAfter  time.Duration `json:"-"`
}

// AnalyzeText analyzes every sentence of a text that has no complete
// analysis yet. A rate limit rejection stops the batch and is reported in
// the result rather than as an error; other per-sentence failures are
// counted and the batch continues.
func (s *Service) AnalyzeText(ctx context.Context, textID int64) (*BatchResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if _, err := s.texts.GetByID(ctx, userID, textID); err != nil {
		return nil, fmt.Errorf("get text: %w", err)
	}

	sentences, err := s.sentences.ListByText(ctx, textID)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}

	res := &BatchResult{Total: len(sentences)}
	todo := make([]domain.Sentence, 0, len(sentences))
	for _, sen := range sentences {
		if sen.IsAnalyzed() {
			res.Skipped++
			continue
		}
		todo = append(todo, sen)
	}
	if len(todo) == 0 {
		return res, nil
	}

	var (
		mu      sync.Mutex
		limited *domain.RateLimitError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range todo {
		if gctx.Err() != nil {
			break
		}
		sen := &todo[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out, err := s.analyze(gctx, userID, sen, false)

			mu.Lock()
			defer mu.Unlock()

			var rle *domain.RateLimitError
			switch {
			case err == nil && out.Source == SourceCache:
				res.Cached++
			case err == nil:
				res.Analyzed++
			case errors.As(err, &rle):
				if limited == nil {
					limited = rle
				}
				return err
			case gctx.Err() != nil:
				// Cancelled by a sibling's rate limit; left pending.
			default:
				res.Failed++
				s.log.WarnContext(ctx, "batch analysis of sentence failed",
					slog.Int64("sentence_id", sen.ID),
					slog.String("error", err.Error()),
				)
			}
			return nil
		})
	}

	werr := g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if werr != nil && limited == nil {
		return nil, werr
	}

	res.Pending = len(todo) - res.Analyzed - res.Cached - res.Failed
	if limited != nil {
		res.RateLimited = true
		res.RetryAfter = limited.RetryAfter
	}

	s.log.InfoContext(ctx, "text analyzed",
		slog.Int64("text_id", textID),
		slog.Int("total", res.Total),
		slog.Int("analyzed", res.Analyzed),
		slog.Int("cached", res.Cached),
		slog.Int("failed", res.Failed),
		slog.Int("pending", res.Pending),
	)
	return res, nil
}
