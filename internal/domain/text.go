package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Text is a reading document owned by a user, with the reader's saved progress.
type Text struct {
	ID                 int64
	UserID             uuid.UUID
	Title              string
	Content            string
	ScaffoldingData    json.RawMessage
	ReadingMode        ReadingMode
	ScaffoldLevel      ScaffoldLevel
	VocabLevel         VocabLevel
	CurrentParagraphID *int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Sentence is one addressable unit of a text.
type Sentence struct {
	ID                  int64
	TextID              int64
	SentenceIndex       int
	ParagraphIndex      *int
	SentenceInParagraph *int
	Content             string
	Translation         *string
	Analysis            *Analysis
	SourceEngine        string
	CreatedAt           time.Time
}

// ParagraphKey groups sentences into paragraphs. Rows without a paragraph
// index form a paragraph of their own.
func (s Sentence) ParagraphKey() int {
	if s.ParagraphIndex != nil {
		return *s.ParagraphIndex
	}
	return s.SentenceIndex
}

// Knowledge returns the attached knowledge items, or nil if not analyzed.
func (s Sentence) Knowledge() []KnowledgeItem {
	if s.Analysis == nil {
		return nil
	}
	return s.Analysis.Knowledge
}

// IsAnalyzed reports whether the sentence carries knowledge, a real insight
// and a real translation.
func (s Sentence) IsAnalyzed() bool {
	if s.Analysis == nil || len(s.Analysis.Knowledge) == 0 {
		return false
	}
	if s.Analysis.Insight.IsPlaceholder() {
		return false
	}
	return s.Translation != nil && !IsPlaceholderTranslation(*s.Translation)
}

// NewSentence is a segmented sentence ready for insertion.
type NewSentence struct {
	SentenceIndex       int
	ParagraphIndex      int
	SentenceInParagraph int
	Content             string
	SourceEngine        string
}

// ParagraphPage describes one page of a paragraph-paged sentence listing.
type ParagraphPage struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// TextPatch carries the optional fields of a text update. A nil field is
// left unchanged; ScaffoldingData is replaced when SetScaffolding is true.
type TextPatch struct {
	Title           *string
	Content         *string
	ScaffoldingData json.RawMessage
	SetScaffolding  bool
}

// IsEmpty reports whether the patch changes nothing.
func (p TextPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && !p.SetScaffolding
}

// ProgressPatch carries the optional reading progress fields.
type ProgressPatch struct {
	ReadingMode        *ReadingMode
	ScaffoldLevel      *ScaffoldLevel
	VocabLevel         *VocabLevel
	CurrentParagraphID *int
}

// IsEmpty reports whether the patch changes nothing.
func (p ProgressPatch) IsEmpty() bool {
	return p.ReadingMode == nil && p.ScaffoldLevel == nil && p.VocabLevel == nil && p.CurrentParagraphID == nil
}

// SentencePatch replaces the translation and the whole analysis bundle.
// A nil field is left unchanged.
type SentencePatch struct {
	Translation *string
	Analysis    *Analysis
}

// IsEmpty reports whether the patch changes nothing.
func (p SentencePatch) IsEmpty() bool {
	return p.Translation == nil && p.Analysis == nil
}
