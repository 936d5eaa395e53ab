package reading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// ListSentences returns the sentences of a text. Without paging every row is
// returned in reading order and the page is nil. With paging the result
// holds every sentence of the selected paragraphs.
func (s *Service) ListSentences(ctx context.Context, input ListSentencesInput) ([]domain.Sentence, *domain.ParagraphPage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	if err := input.validate(s.defaults.MaxPageSize); err != nil {
		return nil, nil, err
	}

	if _, err := s.texts.GetByID(ctx, userID, input.TextID); err != nil {
		return nil, nil, fmt.Errorf("get text: %w", err)
	}

	if !input.Paged() {
		sentences, err := s.sentences.ListByText(ctx, input.TextID)
		if err != nil {
			return nil, nil, fmt.Errorf("list sentences: %w", err)
		}
		return sentences, nil, nil
	}

	return s.paragraphPage(ctx, input.TextID, input.Page, input.PageSize, input.AroundSentenceID)
}

// paragraphPage resolves and loads one page of paragraphs. Ownership must
// already be checked.
func (s *Service) paragraphPage(ctx context.Context, textID int64, page *int, size int, around *int64) ([]domain.Sentence, *domain.ParagraphPage, error) {
	if size == 0 {
		size = s.defaults.PageSize
	}

	total, err := s.sentences.CountParagraphs(ctx, textID)
	if err != nil {
		return nil, nil, fmt.Errorf("count paragraphs: %w", err)
	}

	meta := &domain.ParagraphPage{
		Page:       1,
		PageSize:   size,
		Total:      total,
		TotalPages: max(1, (total+size-1)/size),
	}
	if total == 0 {
		return []domain.Sentence{}, meta, nil
	}

	resolved := 1
	switch {
	case page != nil:
		resolved = *page
	case around != nil:
		ordinal, err := s.sentences.ParagraphOrdinal(ctx, textID, *around)
		switch {
		case err == nil:
			resolved = ordinal/size + 1
		case errors.Is(err, domain.ErrNotFound):
			s.log.WarnContext(ctx, "around sentence not found, falling back to first page",
				slog.Int64("text_id", textID),
				slog.Int64("around_sentence_id", *around),
			)
		default:
			return nil, nil, fmt.Errorf("locate sentence: %w", err)
		}
	}
	meta.Page = max(1, min(resolved, meta.TotalPages))

	sentences, err := s.sentences.ListParagraphPage(ctx, textID, (meta.Page-1)*size, size)
	if err != nil {
		return nil, nil, fmt.Errorf("list paragraph page: %w", err)
	}
	return sentences, meta, nil
}

// UpdateSentence replaces a sentence's translation and analysis in one
// statement.
func (s *Service) UpdateSentence(ctx context.Context, input UpdateSentenceInput) (*domain.Sentence, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	sentence, err := s.sentences.Update(ctx, userID, input.SentenceID, domain.SentencePatch{
		Translation: input.Translation,
		Analysis:    input.Analysis,
	})
	if err != nil {
		return nil, fmt.Errorf("update sentence: %w", err)
	}
	return sentence, nil
}
