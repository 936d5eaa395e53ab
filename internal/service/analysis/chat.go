package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

const maxQueryLength = 2000

// ChatInput is a reading-coach question. The system prompt is built from
// Paragraph unless SystemPrompt is given; Chip selects a quick-action
// question and replaces Query.
type ChatInput struct {
	Paragraph    string
	SystemPrompt string
	Query        string
	Chip         string
}

func (i ChatInput) prompts() (system, user string, err error) {
	var errs []domain.FieldError

	switch {
	case strings.TrimSpace(i.SystemPrompt) != "":
		system = i.SystemPrompt
	case strings.TrimSpace(i.Paragraph) != "":
		system = ai.ChatSystemPrompt(i.Paragraph)
	default:
		errs = append(errs, domain.FieldError{Field: "paragraph", Message: "paragraph or system prompt required"})
	}

	if i.Chip != "" {
		p, ok := ai.ChipPrompt(i.Chip)
		if !ok {
			errs = append(errs, domain.FieldError{Field: "chip", Message: "unknown chip"})
		}
		user = p
	} else {
		user = strings.TrimSpace(i.Query)
		if user == "" {
			errs = append(errs, domain.FieldError{Field: "query", Message: "required"})
		} else if utf8.RuneCountInString(user) > maxQueryLength {
			errs = append(errs, domain.FieldError{Field: "query", Message: "too long"})
		}
	}

	if len(errs) > 0 {
		return "", "", domain.NewValidationErrors(errs)
	}
	return system, user, nil
}

// Chat answers a question about the paragraph being read.
func (s *Service) Chat(ctx context.Context, input ChatInput) (string, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return "", domain.ErrUnauthorized
	}
	system, user, err := input.prompts()
	if err != nil {
		return "", err
	}

	if s.metrics != nil {
		s.metrics.RecordChat(ctx, "sync")
	}
	answer, err := s.ai.Complete(ctx, system, user)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return answer, nil
}

// ChatStream is Chat delivered as text chunks. The channel closes when the
// answer is complete or ctx is cancelled; a failure mid-stream arrives as a
// final Chunk with Err set.
func (s *Service) ChatStream(ctx context.Context, input ChatInput) (<-chan ai.Chunk, error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}
	system, user, err := input.prompts()
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordChat(ctx, "stream")
	}
	ch, err := s.ai.Stream(ctx, system, user)
	if err != nil {
		return nil, fmt.Errorf("chat stream: %w", err)
	}
	return ch, nil
}
