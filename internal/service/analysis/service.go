// Package analysis runs sentence analysis and reading-coach chat against the
// AI collaborator.
package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/reading-copilot/internal/adapter/cache"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const defaultBatchConcurrency = 4

type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	Stream(ctx context.Context, system, user string) (<-chan ai.Chunk, error)
}

type textRepo interface {
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error)
}

type sentenceRepo interface {
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error)
	ListByText(ctx context.Context, textID int64) ([]domain.Sentence, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error)
}

type analysisCache interface {
	Get(ctx context.Context, content string) (cache.Entry, bool, error)
	Set(ctx context.Context, content string, e cache.Entry) error
}

type limiter interface {
	Allow(key string) error
}

type recorder interface {
	RecordAnalysis(ctx context.Context, status string, elapsed time.Duration)
	RecordChat(ctx context.Context, mode string)
}

// Service analyzes sentences and answers reading questions.
type Service struct {
	ai          completer
	texts       textRepo
	sentences   sentenceRepo
	cache       analysisCache
	limiter     limiter
	metrics     recorder
	concurrency int
	inflight    singleflight.Group
	log         *slog.Logger
}

// Deps groups the collaborators of the Service. Cache and Metrics may be nil.
type Deps struct {
	AI        completer
	Texts     textRepo
	Sentences sentenceRepo
	Cache     analysisCache
	Limiter   limiter
	Metrics   recorder
}

// NewService creates an analysis Service. concurrency bounds batch analysis.
func NewService(log *slog.Logger, deps Deps, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &Service{
		ai:          deps.AI,
		texts:       deps.Texts,
		sentences:   deps.Sentences,
		cache:       deps.Cache,
		limiter:     deps.Limiter,
		metrics:     deps.Metrics,
		concurrency: concurrency,
		log:         log.With("service", "analysis"),
	}
}

func (s *Service) recordAnalysis(ctx context.Context, status string, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.RecordAnalysis(ctx, status, elapsed)
	}
}
