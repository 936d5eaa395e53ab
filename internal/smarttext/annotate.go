package smarttext

import (
	"html"
	"strconv"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// SentenceInput is a precomputed sentence with its own knowledge items.
type SentenceInput struct {
	Content   string
	Knowledge []domain.KnowledgeItem
}

// Paragraph is the input of Annotate.
type Paragraph struct {
	ID   string
	Text string
	// Sentences, when non-empty, take precedence over segmenting Text.
	Sentences []SentenceInput
	// Knowledge applies to every sentence that carries no items of its own.
	Knowledge        []domain.KnowledgeItem
	ActiveSentenceID string
}

// Result is an annotated paragraph plus per-sentence diagnostics.
type Result struct {
	HTML        string
	SentenceIDs []string
	Spans       [][]MatchSpan
	Misses      []domain.KnowledgeItem
}

// SentenceID returns the addressable id of the index-th sentence of a paragraph.
func SentenceID(paragraphID string, index int) string {
	return paragraphID + "::" + strconv.Itoa(index)
}

// FilterByThreshold keeps items with Diff >= threshold.
func FilterByThreshold(items []domain.KnowledgeItem, threshold domain.Difficulty) []domain.KnowledgeItem {
	out := make([]domain.KnowledgeItem, 0, len(items))
	for _, it := range items {
		if it.Diff >= threshold {
			out = append(out, it)
		}
	}
	return out
}

// Annotate renders p as a sequence of addressable sentence containers joined
// by a single space. Identical inputs always produce identical output.
func Annotate(p Paragraph, opts Options) string {
	return AnnotateDetailed(p, opts).HTML
}

// AnnotateDetailed is Annotate that also returns the matched spans and the
// items that found no span.
func AnnotateDetailed(p Paragraph, opts Options) Result {
	sentences := resolveSentences(p)
	if len(sentences) == 0 {
		return Result{}
	}

	res := Result{
		SentenceIDs: make([]string, len(sentences)),
		Spans:       make([][]MatchSpan, len(sentences)),
	}
	units := make([]string, len(sentences))
	for i, s := range sentences {
		id := SentenceID(p.ID, i)
		res.SentenceIDs[i] = id

		items := s.Knowledge
		if len(items) == 0 {
			items = p.Knowledge
		}
		spans, misses := MatchWithMisses(s.Content, FilterByThreshold(items, opts.Threshold))
		res.Spans[i] = spans
		res.Misses = append(res.Misses, misses...)

		units[i] = wrapSentence(p.ID, i, id == p.ActiveSentenceID, renderSpans(s.Content, spans, opts))
	}
	res.HTML = strings.Join(units, " ")
	return res
}

func resolveSentences(p Paragraph) []SentenceInput {
	var pre []SentenceInput
	for _, s := range p.Sentences {
		if c := strings.TrimSpace(s.Content); c != "" {
			pre = append(pre, SentenceInput{Content: c, Knowledge: s.Knowledge})
		}
	}
	if len(pre) > 0 {
		return pre
	}

	if p.Text == "" {
		return nil
	}
	segs := Segment(p.Text)
	if len(segs) == 0 {
		return []SentenceInput{{Content: p.Text}}
	}
	out := make([]SentenceInput, len(segs))
	for i, s := range segs {
		out[i] = SentenceInput{Content: s}
	}
	return out
}

// renderSpans substitutes each span with its markup and escapes the rest.
func renderSpans(sentence string, spans []MatchSpan, opts Options) string {
	if len(spans) == 0 {
		return escapeText(sentence)
	}

	var b strings.Builder
	prev := 0
	for _, sp := range spans {
		b.WriteString(escapeText(sentence[prev:sp.Start]))
		b.WriteString(BuildMarkup(sp, opts))
		prev = sp.End
	}
	b.WriteString(escapeText(sentence[prev:]))
	return b.String()
}

func wrapSentence(paragraphID string, index int, active bool, inner string) string {
	pid := html.EscapeString(paragraphID)
	idx := strconv.Itoa(index)

	var b strings.Builder
	b.WriteString(`<span class="sentence-unit`)
	if active {
		b.WriteString(` active-sentence`)
	}
	b.WriteString(`" data-sentence-id="`)
	b.WriteString(pid + "::" + idx)
	b.WriteString(`" data-paragraph-id="`)
	b.WriteString(pid)
	b.WriteString(`" data-sentence-index="`)
	b.WriteString(idx)
	b.WriteString(`">`)
	b.WriteString(inner)
	b.WriteString(`</span>`)
	return b.String()
}
