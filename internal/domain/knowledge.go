package domain

import "strings"

// DefSeparator splits a definition into locale glosses; only the first is displayed.
const DefSeparator = "；"

// Placeholder texts the analysis collaborator writes when it has nothing to say.
const (
	NoInsight       = "No insight"
	NoInsightZH     = "暂无解析"
	NoTranslation   = "No translation"
	NoTranslationZH = "暂无翻译"
)

// KnowledgeItem is a dictionary-style entry tied to a sentence.
type KnowledgeItem struct {
	Key     string     `json:"key"`
	Word    string     `json:"word"`
	IPA     string     `json:"ipa,omitempty"`
	Def     string     `json:"def"`
	Clue    string     `json:"clue,omitempty"`
	Diff    Difficulty `json:"diff"`
	Context string     `json:"context,omitempty"`
}

// Validate checks the fields the annotation engine relies on.
func (k KnowledgeItem) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(k.Key) == "" {
		errs = append(errs, FieldError{Field: "key", Message: "required"})
	}
	if strings.TrimSpace(k.Word) == "" {
		errs = append(errs, FieldError{Field: "word", Message: "required"})
	}
	if !k.Diff.IsValid() {
		errs = append(errs, FieldError{Field: "diff", Message: "must be between 1 and 6"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// PrimaryDef returns the first gloss of Def. A definition without the
// separator is returned whole.
func (k KnowledgeItem) PrimaryDef() string {
	first, _, _ := strings.Cut(k.Def, DefSeparator)
	return first
}

// IsPhrase reports whether the headword spans more than one word.
func (k KnowledgeItem) IsPhrase() bool {
	return strings.Contains(k.Word, " ")
}

// Insight is a one-line reading note about a sentence.
type Insight struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// IsPlaceholder reports whether the insight carries no real content.
func (i *Insight) IsPlaceholder() bool {
	if i == nil {
		return true
	}
	t := strings.TrimSpace(i.Text)
	return t == "" || t == NoInsight || t == NoInsightZH
}

// KeyWord is one highlighted word of an x-ray breakdown.
type KeyWord struct {
	Word string `json:"word"`
	Role string `json:"role"`
}

// XRay is the structural breakdown of a sentence.
type XRay struct {
	Pattern     string    `json:"pattern,omitempty"`
	Breakdown   string    `json:"breakdown,omitempty"`
	KeyWords    []KeyWord `json:"keyWords,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
}

// Companion is an optional short literary or historical note.
type Companion struct {
	Tag  string `json:"tag,omitempty"`
	Text string `json:"text"`
}

// Analysis is the bundle attached to a sentence by the analysis collaborator.
// It is always replaced as a whole.
type Analysis struct {
	Knowledge []KnowledgeItem `json:"knowledge"`
	Insight   *Insight        `json:"insight,omitempty"`
	XRay      *XRay           `json:"xray,omitempty"`
	Companion *Companion      `json:"companion,omitempty"`
}

// IsPlaceholderTranslation reports whether t is empty or a placeholder.
func IsPlaceholderTranslation(t string) bool {
	t = strings.TrimSpace(t)
	return t == "" || t == NoTranslation || t == NoTranslationZH
}
