package reading

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/smarttext"
	"github.com/heartmarshall/reading-copilot/pkg/ctxutil"
)

// RenderedParagraph is one annotated paragraph of a page.
type RenderedParagraph struct {
	ParagraphID int              `json:"paragraph_id"`
	HTML        string           `json:"html"`
	SentenceIDs []int64          `json:"sentence_ids"`
	Cards       []smarttext.Card `json:"cards"`
}

// RenderParagraphs annotates one page of paragraphs. Without an explicit page
// the page holding ActiveSentenceID is rendered.
func (s *Service) RenderParagraphs(ctx context.Context, input RenderInput) ([]RenderedParagraph, *domain.ParagraphPage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, nil, domain.ErrUnauthorized
	}

	list := ListSentencesInput{TextID: input.TextID, PageSize: input.PageSize}
	if input.Page > 0 {
		list.Page = &input.Page
	}
	if err := list.validate(s.defaults.MaxPageSize); err != nil {
		return nil, nil, err
	}

	text, err := s.texts.GetByID(ctx, userID, input.TextID)
	if err != nil {
		return nil, nil, fmt.Errorf("get text: %w", err)
	}

	opts := s.renderOptions(text, input)
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	around := input.ActiveSentenceID
	if list.Page != nil {
		around = nil
	}
	sentences, page, err := s.paragraphPage(ctx, text.ID, list.Page, list.PageSize, around)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	var matched, unmatched int
	out := make([]RenderedParagraph, 0, page.PageSize)
	for _, group := range groupParagraphs(sentences) {
		rp, m, u := s.renderParagraph(ctx, group, opts, input.ActiveSentenceID)
		out = append(out, rp)
		matched += m
		unmatched += u
	}

	if s.metrics != nil {
		s.metrics.RecordAnnotate(ctx, time.Since(start), matched, unmatched)
	}

	return out, page, nil
}

func (s *Service) renderOptions(text *domain.Text, input RenderInput) smarttext.Options {
	opts := smarttext.Options{
		Mode:      text.ReadingMode,
		Level:     text.ScaffoldLevel,
		Threshold: text.VocabLevel.Threshold(),
		Toggles:   input.Toggles,
	}
	if input.Mode != nil {
		opts.Mode = *input.Mode
	}
	if input.Level != nil {
		opts.Level = *input.Level
	}
	if input.VocabLevel != nil {
		opts.Threshold = input.VocabLevel.Threshold()
	}
	return opts
}

func (s *Service) renderParagraph(ctx context.Context, group []domain.Sentence, opts smarttext.Options, active *int64) (RenderedParagraph, int, int) {
	key := group[0].ParagraphKey()
	pid := strconv.Itoa(key)

	// Blank rows take no sentence index, matching the annotator.
	p := smarttext.Paragraph{ID: pid}
	ids := make([]int64, 0, len(group))
	var items []domain.KnowledgeItem
	for _, sent := range group {
		if strings.TrimSpace(sent.Content) == "" {
			continue
		}
		if active != nil && sent.ID == *active {
			p.ActiveSentenceID = smarttext.SentenceID(pid, len(ids))
		}
		ids = append(ids, sent.ID)
		p.Sentences = append(p.Sentences, smarttext.SentenceInput{
			Content:   sent.Content,
			Knowledge: sent.Knowledge(),
		})
		items = append(items, sent.Knowledge()...)
	}

	res := smarttext.AnnotateDetailed(p, opts)

	matched := 0
	for _, spans := range res.Spans {
		matched += len(spans)
	}
	s.logMisses(ctx, group, res.Misses)

	return RenderedParagraph{
		ParagraphID: key,
		HTML:        res.HTML,
		SentenceIDs: ids,
		Cards:       smarttext.Cards(items, opts),
	}, matched, len(res.Misses)
}

// logMisses explains unmatched knowledge items with the closest token of the
// paragraph.
func (s *Service) logMisses(ctx context.Context, group []domain.Sentence, misses []domain.KnowledgeItem) {
	if len(misses) == 0 || !s.log.Enabled(ctx, slog.LevelDebug) {
		return
	}

	var paragraph string
	for _, sent := range group {
		paragraph += sent.Content + " "
	}
	for _, item := range misses {
		attrs := []any{
			slog.Int64("text_id", group[0].TextID),
			slog.String("key", item.Key),
			slog.String("word", item.Word),
		}
		if sug, ok := smarttext.Nearest(paragraph, item.Word, smarttext.DefaultNearestThreshold); ok {
			attrs = append(attrs, slog.String("nearest", sug.Token), slog.Float64("score", sug.Score))
		}
		s.log.DebugContext(ctx, "knowledge item not found in sentence", attrs...)
	}
}

// groupParagraphs splits sentences ordered by sentence_index into runs that
// share a paragraph key.
func groupParagraphs(sentences []domain.Sentence) [][]domain.Sentence {
	var (
		out  [][]domain.Sentence
		last = -1
	)
	for _, sent := range sentences {
		key := sent.ParagraphKey()
		if len(out) == 0 || key != last {
			out = append(out, nil)
			last = key
		}
		out[len(out)-1] = append(out[len(out)-1], sent)
	}
	return out
}
