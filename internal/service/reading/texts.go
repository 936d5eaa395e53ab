package reading

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// ListTexts returns the caller's texts, most recently updated first.
func (s *Service) ListTexts(ctx context.Context) ([]domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	texts, err := s.texts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}
	return texts, nil
}

// GetText returns one of the caller's texts.
func (s *Service) GetText(ctx context.Context, textID int64) (*domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	text, err := s.texts.GetByID(ctx, userID, textID)
	if err != nil {
		return nil, fmt.Errorf("get text: %w", err)
	}
	return text, nil
}

// CreateText stores a text and its segmented sentences in one transaction.
func (s *Service) CreateText(ctx context.Context, input CreateTextInput) (*domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	sentences := segmentText(input.Content, input.ScaffoldingData)

	var created *domain.Text
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.texts.Create(txCtx, domain.Text{
			UserID:          userID,
			Title:           strings.TrimSpace(input.Title),
			Content:         input.Content,
			ScaffoldingData: input.ScaffoldingData,
			ReadingMode:     s.defaults.ReadingMode,
			ScaffoldLevel:   s.defaults.ScaffoldLevel,
			VocabLevel:      s.defaults.VocabLevel,
		})
		if err != nil {
			return fmt.Errorf("create text: %w", err)
		}

		if _, err := s.sentences.InsertBatch(txCtx, created.ID, sentences); err != nil {
			return fmt.Errorf("insert sentences: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "text created",
		slog.String("user_id", userID.String()),
		slog.Int64("text_id", created.ID),
		slog.Int("sentences", len(sentences)),
	)

	return created, nil
}

// UpdateText changes title, content or scaffolding data. A content change
// replaces every sentence row, discarding their analyses.
func (s *Service) UpdateText(ctx context.Context, input UpdateTextInput) (*domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	patch := domain.TextPatch{Content: input.Content}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		patch.Title = &title
	}
	if input.ScaffoldingData != nil {
		patch.SetScaffolding = true
		if string(input.ScaffoldingData) != "null" {
			patch.ScaffoldingData = input.ScaffoldingData
		}
	}

	var (
		updated    *domain.Text
		resegments int
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		updated, err = s.texts.Update(txCtx, userID, input.TextID, patch)
		if err != nil {
			return fmt.Errorf("update text: %w", err)
		}
		if input.Content == nil {
			return nil
		}

		if _, err := s.sentences.DeleteByText(txCtx, updated.ID); err != nil {
			return fmt.Errorf("delete sentences: %w", err)
		}
		sentences := segmentText(updated.Content, updated.ScaffoldingData)
		if _, err := s.sentences.InsertBatch(txCtx, updated.ID, sentences); err != nil {
			return fmt.Errorf("insert sentences: %w", err)
		}
		resegments = len(sentences)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		s.log.InfoContext(ctx, "text re-segmented",
			slog.String("user_id", userID.String()),
			slog.Int64("text_id", updated.ID),
			slog.Int("sentences", resegments),
		)
	}

	return updated, nil
}

// DeleteText removes a text and its sentences.
func (s *Service) DeleteText(ctx context.Context, textID int64) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.texts.Delete(ctx, userID, textID); err != nil {
		return fmt.Errorf("delete text: %w", err)
	}

	s.log.InfoContext(ctx, "text deleted",
		slog.String("user_id", userID.String()),
		slog.Int64("text_id", textID),
	)
	return nil
}

// UpdateProgress saves the reader's mode, levels and position.
func (s *Service) UpdateProgress(ctx context.Context, input UpdateProgressInput) (*domain.Text, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	text, err := s.texts.UpdateProgress(ctx, userID, input.TextID, input.patch())
	if err != nil {
		return nil, fmt.Errorf("update progress: %w", err)
	}
	return text, nil
}
