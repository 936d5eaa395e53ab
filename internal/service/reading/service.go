// Package reading manages texts, their segmented sentences and the reader's
// progress, and renders annotated paragraphs.
package reading

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/pdf"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/webpage"
	"github.com/heartmarshall/reading-copilot/internal/config"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

type textRepo interface {
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error)
	Create(ctx context.Context, t domain.Text) (*domain.Text, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, p domain.TextPatch) (*domain.Text, error)
	UpdateProgress(ctx context.Context, userID uuid.UUID, id int64, p domain.ProgressPatch) (*domain.Text, error)
	Delete(ctx context.Context, userID uuid.UUID, id int64) error
}

type sentenceRepo interface {
	GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error)
	ListByText(ctx context.Context, textID int64) ([]domain.Sentence, error)
	CountParagraphs(ctx context.Context, textID int64) (int, error)
	ParagraphOrdinal(ctx context.Context, textID, sentenceID int64) (int, error)
	ListParagraphPage(ctx context.Context, textID int64, offset, limit int) ([]domain.Sentence, error)
	InsertBatch(ctx context.Context, textID int64, sentences []domain.NewSentence) (int, error)
	DeleteByText(ctx context.Context, textID int64) (int64, error)
	Update(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type articleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (webpage.Article, error)
}

type pdfExtractor interface {
	Extract(ctx context.Context, data []byte) (pdf.Document, error)
}

type annotateRecorder interface {
	RecordAnnotate(ctx context.Context, elapsed time.Duration, matched, unmatched int)
}

// Defaults are the reading settings applied when a request or a text does
// not carry its own.
type Defaults struct {
	ReadingMode   domain.ReadingMode
	ScaffoldLevel domain.ScaffoldLevel
	VocabLevel    domain.VocabLevel
	PageSize      int
	MaxPageSize   int
}

// DefaultsFromConfig converts validated reader settings.
func DefaultsFromConfig(cfg config.ReaderConfig) Defaults {
	return Defaults{
		ReadingMode:   domain.ReadingMode(cfg.DefaultReadingMode),
		ScaffoldLevel: domain.ScaffoldLevel(cfg.DefaultScaffoldLevel),
		VocabLevel:    domain.VocabLevel(cfg.DefaultVocabLevel),
		PageSize:      cfg.PageSize,
		MaxPageSize:   cfg.MaxPageSize,
	}
}

func (d Defaults) withFallbacks() Defaults {
	if !d.ReadingMode.IsValid() {
		d.ReadingMode = domain.ReadingModeFlow
	}
	if !d.ScaffoldLevel.IsValid() {
		d.ScaffoldLevel = domain.DefaultScaffolding
	}
	if !d.VocabLevel.IsValid() {
		d.VocabLevel = domain.DefaultVocabLevel
	}
	if d.MaxPageSize <= 0 {
		d.MaxPageSize = 100
	}
	if d.PageSize <= 0 || d.PageSize > d.MaxPageSize {
		d.PageSize = min(20, d.MaxPageSize)
	}
	return d
}

// Service implements the reading store and annotated rendering.
type Service struct {
	texts     textRepo
	sentences sentenceRepo
	tx        txManager
	fetcher   articleFetcher
	pdf       pdfExtractor
	metrics   annotateRecorder
	defaults  Defaults
	log       *slog.Logger
}

// NewService creates a reading Service. fetcher and metrics may be nil.
func NewService(
	log *slog.Logger,
	texts textRepo,
	sentences sentenceRepo,
	tx txManager,
	fetcher articleFetcher,
	metrics annotateRecorder,
	defaults Defaults,
) *Service {
	return &Service{
		texts:     texts,
		sentences: sentences,
		tx:        tx,
		fetcher:   fetcher,
		metrics:   metrics,
		defaults:  defaults.withFallbacks(),
		log:       log.With("service", "reading"),
	}
}

// WithPDF enables PDF uploads.
func (s *Service) WithPDF(x pdfExtractor) *Service {
	s.pdf = x
	return s
}
