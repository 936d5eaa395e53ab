package reading

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/smarttext"
)

const (
	maxTitleLength   = 300
	maxContentLength = 2_000_000
)

// CreateTextInput holds the parameters for creating a text.
type CreateTextInput struct {
	Title           string
	Content         string
	ScaffoldingData json.RawMessage
}

// Validate checks all fields and collects all errors.
func (i CreateTextInput) Validate() error {
	var errs []domain.FieldError
	errs = validateTitle(errs, i.Title)
	errs = validateContent(errs, i.Content)
	errs = validateScaffolding(errs, i.ScaffoldingData)
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateTextInput holds the optional fields of a text update. ScaffoldingData
// is replaced when non-nil; the JSON literal null clears it.
type UpdateTextInput struct {
	TextID          int64
	Title           *string
	Content         *string
	ScaffoldingData json.RawMessage
}

// Validate checks all fields and collects all errors.
func (i UpdateTextInput) Validate() error {
	var errs []domain.FieldError
	if i.TextID <= 0 {
		errs = append(errs, domain.FieldError{Field: "text_id", Message: "required"})
	}
	if i.Title != nil {
		errs = validateTitle(errs, *i.Title)
	}
	if i.Content != nil {
		errs = validateContent(errs, *i.Content)
	}
	if i.ScaffoldingData != nil && string(i.ScaffoldingData) != "null" {
		errs = validateScaffolding(errs, i.ScaffoldingData)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateProgressInput holds the optional reading progress fields.
type UpdateProgressInput struct {
	TextID             int64
	ReadingMode        *domain.ReadingMode
	ScaffoldLevel      *domain.ScaffoldLevel
	VocabLevel         *domain.VocabLevel
	CurrentParagraphID *int
}

// Validate checks all fields and collects all errors.
func (i UpdateProgressInput) Validate() error {
	var errs []domain.FieldError
	if i.TextID <= 0 {
		errs = append(errs, domain.FieldError{Field: "text_id", Message: "required"})
	}
	if i.ReadingMode != nil && !i.ReadingMode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "reading_mode", Message: "must be flow or learn"})
	}
	if i.ScaffoldLevel != nil && !i.ScaffoldLevel.IsValid() {
		errs = append(errs, domain.FieldError{Field: "scaffold_level", Message: "must be 1, 2 or 3"})
	}
	if i.VocabLevel != nil && !i.VocabLevel.IsValid() {
		errs = append(errs, domain.FieldError{Field: "vocab_level", Message: "must be one of A1, A2, B1, B2, C1, C2"})
	}
	if i.CurrentParagraphID != nil && *i.CurrentParagraphID < 0 {
		errs = append(errs, domain.FieldError{Field: "current_paragraph_id", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i UpdateProgressInput) patch() domain.ProgressPatch {
	return domain.ProgressPatch{
		ReadingMode:        i.ReadingMode,
		ScaffoldLevel:      i.ScaffoldLevel,
		VocabLevel:         i.VocabLevel,
		CurrentParagraphID: i.CurrentParagraphID,
	}
}

// ListSentencesInput selects all sentences of a text, or one page of
// paragraphs when Page or AroundSentenceID is set.
type ListSentencesInput struct {
	TextID           int64
	Page             *int
	PageSize         int
	AroundSentenceID *int64
}

// Paged reports whether paragraph paging was requested.
func (i ListSentencesInput) Paged() bool {
	return i.Page != nil || i.AroundSentenceID != nil
}

func (i ListSentencesInput) validate(maxPageSize int) error {
	var errs []domain.FieldError
	if i.TextID <= 0 {
		errs = append(errs, domain.FieldError{Field: "text_id", Message: "required"})
	}
	if i.Page != nil && *i.Page < 1 {
		errs = append(errs, domain.FieldError{Field: "paragraph_page", Message: "must be at least 1"})
	}
	if i.PageSize != 0 && (i.PageSize < 1 || i.PageSize > maxPageSize) {
		errs = append(errs, domain.FieldError{Field: "paragraph_page_size", Message: "out of range"})
	}
	if i.AroundSentenceID != nil && *i.AroundSentenceID < 1 {
		errs = append(errs, domain.FieldError{Field: "around_sentence_id", Message: "must be at least 1"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSentenceInput replaces the translation and the analysis bundle.
type UpdateSentenceInput struct {
	SentenceID  int64
	Translation *string
	Analysis    *domain.Analysis
}

// Validate checks all fields and collects all errors.
func (i UpdateSentenceInput) Validate() error {
	var errs []domain.FieldError
	if i.SentenceID <= 0 {
		errs = append(errs, domain.FieldError{Field: "sentence_id", Message: "required"})
	}
	if i.Analysis != nil {
		for _, k := range i.Analysis.Knowledge {
			if err := k.Validate(); err != nil {
				errs = append(errs, domain.FieldError{Field: "analysis.knowledge", Message: err.Error()})
				break
			}
		}
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RenderInput selects a page of paragraphs to annotate. Nil settings fall
// back to the text's saved progress.
type RenderInput struct {
	TextID           int64
	Page             int
	PageSize         int
	Mode             *domain.ReadingMode
	Level            *domain.ScaffoldLevel
	VocabLevel       *domain.VocabLevel
	ActiveSentenceID *int64
	Toggles          smarttext.ToggleState
}

// ImportInput holds the URL of an article to import.
type ImportInput struct {
	URL string
}

// Validate checks all fields and collects all errors.
func (i ImportInput) Validate() error {
	if strings.TrimSpace(i.URL) == "" {
		return domain.NewValidationError("url", "required")
	}
	return nil
}

// ImportPDFInput holds an uploaded PDF. An empty Title falls back to the
// file name.
type ImportPDFInput struct {
	Filename string
	Title    string
	Data     []byte
}

// Validate checks all fields and collects all errors.
func (i ImportPDFInput) Validate() error {
	var errs []domain.FieldError
	if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(i.Filename)), ".pdf") {
		errs = append(errs, domain.FieldError{Field: "file", Message: "only PDF files are supported"})
	} else if len(i.Data) == 0 {
		errs = append(errs, domain.FieldError{Field: "file", Message: "required"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(i.Title)) > maxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTitle(errs []domain.FieldError, title string) []domain.FieldError {
	t := strings.TrimSpace(title)
	if t == "" {
		return append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(t) > maxTitleLength {
		return append(errs, domain.FieldError{Field: "title", Message: "max 300 characters"})
	}
	return errs
}

func validateContent(errs []domain.FieldError, content string) []domain.FieldError {
	if strings.TrimSpace(content) == "" {
		return append(errs, domain.FieldError{Field: "content", Message: "required"})
	}
	if len(content) > maxContentLength {
		return append(errs, domain.FieldError{Field: "content", Message: "too long"})
	}
	return errs
}

func validateScaffolding(errs []domain.FieldError, raw json.RawMessage) []domain.FieldError {
	if len(raw) == 0 {
		return errs
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return append(errs, domain.FieldError{Field: "scaffolding_data", Message: "must be a JSON object"})
	}
	return errs
}
