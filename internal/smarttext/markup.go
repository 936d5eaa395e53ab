package smarttext

import (
	"html"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// textEscaper escapes text nodes. Quotes stay literal so ordinary prose
// renders byte-for-byte; attribute values go through html.EscapeString.
var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string { return textEscaper.Replace(s) }

// HintPlaceholder is shown when an item carries no clue.
const HintPlaceholder = "Hint?"

// ToggleState is the reader's per-session interaction state. The engine
// reads it and never mutates it.
type ToggleState struct {
	RevealedKeys map[string]bool `json:"revealed_keys,omitempty"`
	Toggled      map[string]bool `json:"toggled,omitempty"`
}

// IsRevealed reports whether the reader revealed key in the card panel.
func (s ToggleState) IsRevealed(key string) bool { return s.RevealedKeys[key] }

// IsToggled reports whether the reader flipped key's tooltip to the definition.
func (s ToggleState) IsToggled(key string) bool { return s.Toggled[key] }

// Options controls how matched spans are rendered.
type Options struct {
	Mode      domain.ReadingMode
	Level     domain.ScaffoldLevel
	Threshold domain.Difficulty
	Toggles   ToggleState
}

// Validate rejects modes and levels outside the supported set.
func (o Options) Validate() error {
	var errs []domain.FieldError
	if !o.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be flow or learn"})
	}
	if !o.Level.IsValid() {
		errs = append(errs, domain.FieldError{Field: "level", Message: "must be 1, 2 or 3"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// BuildMarkup renders the fragment that replaces span in the sentence.
//
//	flow  1: tooltip with the primary definition
//	flow  2: tooltip with the clue, or the definition once toggled; clickable
//	flow  3: tooltip with the clue
//	learn 1: inline definition tag after the word
//	learn 2: hover tooltip with the definition
//	learn 3: highlight only
func BuildMarkup(span MatchSpan, opts Options) string {
	item := span.Item
	surface := escapeText(span.SurfaceText)

	class := "smart-word has-card"
	if opts.Mode == domain.ReadingModeFlow && opts.Level == domain.ScaffoldLevelHint {
		class += " interactive-word"
	}

	var b strings.Builder
	b.WriteString(`<span class="`)
	b.WriteString(class)
	b.WriteString(`" data-key="`)
	b.WriteString(html.EscapeString(item.Key))
	b.WriteString(`">`)
	b.WriteString(surface)

	switch opts.Mode {
	case domain.ReadingModeLearn:
		switch opts.Level {
		case domain.ScaffoldLevelFull:
			b.WriteString(`<span class="inline-def-tag"> `)
			b.WriteString(escapeText(item.PrimaryDef()))
			b.WriteString(`</span>`)
		case domain.ScaffoldLevelHint:
			writeTooltip(&b, item.PrimaryDef())
		}
	default:
		writeTooltip(&b, flowTooltip(item, opts))
	}

	b.WriteString(`</span>`)
	return b.String()
}

func flowTooltip(item domain.KnowledgeItem, opts Options) string {
	switch opts.Level {
	case domain.ScaffoldLevelFull:
		return item.PrimaryDef()
	case domain.ScaffoldLevelHint:
		if opts.Toggles.IsToggled(item.Key) {
			return item.PrimaryDef()
		}
	}
	return clueOrPlaceholder(item)
}

func clueOrPlaceholder(item domain.KnowledgeItem) string {
	if item.Clue != "" {
		return item.Clue
	}
	return HintPlaceholder
}

func writeTooltip(b *strings.Builder, text string) {
	b.WriteString(`<div class="peek-tooltip">`)
	b.WriteString(escapeText(text))
	b.WriteString(`</div>`)
}
