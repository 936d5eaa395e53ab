package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

type textResponse struct {
	ID                 int64           `json:"id"`
	Title              string          `json:"title"`
	Content            string          `json:"content"`
	ScaffoldingData    json.RawMessage `json:"scaffolding_data"`
	ReadingMode        string          `json:"reading_mode"`
	ScaffoldLevel      int             `json:"scaffold_level"`
	VocabLevel         string          `json:"vocab_level"`
	CurrentParagraphID *int            `json:"current_paragraph_id"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func toTextResponse(t *domain.Text) textResponse {
	scaffolding := t.ScaffoldingData
	if len(scaffolding) == 0 {
		scaffolding = json.RawMessage("null")
	}
	return textResponse{
		ID:                 t.ID,
		Title:              t.Title,
		Content:            t.Content,
		ScaffoldingData:    scaffolding,
		ReadingMode:        string(t.ReadingMode),
		ScaffoldLevel:      int(t.ScaffoldLevel),
		VocabLevel:         string(t.VocabLevel),
		CurrentParagraphID: t.CurrentParagraphID,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

type sentenceResponse struct {
	ID                  int64            `json:"id"`
	TextID              int64            `json:"text_id"`
	SentenceIndex       int              `json:"sentence_index"`
	ParagraphIndex      *int             `json:"paragraph_index"`
	SentenceInParagraph *int             `json:"sentence_in_paragraph"`
	Content             string           `json:"content"`
	Translation         *string          `json:"translation"`
	Analysis            *domain.Analysis `json:"analysis"`
	SourceEngine        string           `json:"source_engine,omitempty"`
}

func toSentenceResponse(s *domain.Sentence) sentenceResponse {
	return sentenceResponse{
		ID:                  s.ID,
		TextID:              s.TextID,
		SentenceIndex:       s.SentenceIndex,
		ParagraphIndex:      s.ParagraphIndex,
		SentenceInParagraph: s.SentenceInParagraph,
		Content:             s.Content,
		Translation:         s.Translation,
		Analysis:            s.Analysis,
		SourceEngine:        s.SourceEngine,
	}
}

func toSentenceResponses(list []domain.Sentence) []sentenceResponse {
	out := make([]sentenceResponse, 0, len(list))
	for i := range list {
		out = append(out, toSentenceResponse(&list[i]))
	}
	return out
}

// Paragraph paging headers.
const (
	headerParagraphPage       = "X-Paragraph-Page"
	headerParagraphPageSize   = "X-Paragraph-Page-Size"
	headerParagraphTotal      = "X-Paragraph-Total"
	headerParagraphTotalPages = "X-Paragraph-Total-Pages"
)

func setPageHeaders(h http.Header, p *domain.ParagraphPage) {
	if p == nil {
		return
	}
	h.Set(headerParagraphPage, strconv.Itoa(p.Page))
	h.Set(headerParagraphPageSize, strconv.Itoa(p.PageSize))
	h.Set(headerParagraphTotal, strconv.Itoa(p.Total))
	h.Set(headerParagraphTotalPages, strconv.Itoa(p.TotalPages))
}
