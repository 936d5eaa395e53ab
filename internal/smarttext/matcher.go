package smarttext

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// MatchSpan is a located occurrence of a knowledge item. Start and End are
// byte offsets into the sentence.
type MatchSpan struct {
	Start       int
	End         int
	Item        domain.KnowledgeItem
	SurfaceText string
}

// Strategy identifies which matching rule located a span.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyContextWord
	StrategyContextPhrase
	StrategySuffixWord
	StrategySuffixPhrase
)

func (s Strategy) String() string {
	switch s {
	case StrategyContextWord:
		return "context_word"
	case StrategyContextPhrase:
		return "context_phrase"
	case StrategySuffixWord:
		return "suffix_word"
	case StrategySuffixPhrase:
		return "suffix_phrase"
	}
	return "none"
}

// tokenPunct is stripped from context tokens before comparison.
var tokenPunct = regexp.MustCompile(`[.,!?;:'"]`)

// Match locates at most one span per item in sentence. Longer headwords are
// placed first and a claimed range is never reused, so the result never
// overlaps. Items with no discoverable span are omitted. The result is
// sorted by Start.
func Match(sentence string, items []domain.KnowledgeItem) []MatchSpan {
	spans, _ := MatchWithMisses(sentence, items)
	return spans
}

// MatchWithMisses is Match that also returns the items that found no span.
func MatchWithMisses(sentence string, items []domain.KnowledgeItem) ([]MatchSpan, []domain.KnowledgeItem) {
	if sentence == "" || len(items) == 0 {
		return nil, slices.Clone(items)
	}

	ordered := slices.Clone(items)
	slices.SortStableFunc(ordered, func(a, b domain.KnowledgeItem) int {
		return cmp.Compare(utf8.RuneCountInString(b.Word), utf8.RuneCountInString(a.Word))
	})

	var (
		spans  []MatchSpan
		misses []domain.KnowledgeItem
	)
	for _, item := range ordered {
		span, ok := locate(sentence, item, spans)
		if !ok {
			misses = append(misses, item)
			continue
		}
		spans = append(spans, span)
	}

	slices.SortFunc(spans, func(a, b MatchSpan) int { return cmp.Compare(a.Start, b.Start) })
	return spans, misses
}

// StrategyFor reports which rule would locate item in an otherwise
// unclaimed sentence.
func StrategyFor(sentence string, item domain.KnowledgeItem) Strategy {
	for _, c := range candidates(item) {
		if _, ok := firstFree(sentence, c.re, nil); ok {
			return c.strategy
		}
	}
	return StrategyNone
}

func locate(sentence string, item domain.KnowledgeItem, claimed []MatchSpan) (MatchSpan, bool) {
	for _, c := range candidates(item) {
		loc, ok := firstFree(sentence, c.re, claimed)
		if !ok {
			continue
		}
		return MatchSpan{
			Start:       loc[0],
			End:         loc[1],
			Item:        item,
			SurfaceText: sentence[loc[0]:loc[1]],
		}, true
	}
	return MatchSpan{}, false
}

type candidate struct {
	strategy Strategy
	re       *regexp.Regexp
}

// candidates returns the patterns for item in the order they are tried.
func candidates(item domain.KnowledgeItem) []candidate {
	// RE2 rejects patterns holding invalid UTF-8, even quoted.
	word := strings.ToValidUTF8(strings.TrimSpace(item.Word), "\uFFFD")
	if word == "" {
		return nil
	}

	var out []candidate
	phrase := strings.Contains(word, " ")

	if ctx := strings.ToValidUTF8(item.Context, "\uFFFD"); strings.TrimSpace(ctx) != "" {
		if !phrase {
			for _, re := range contextWordPatterns(word, ctx) {
				out = append(out, candidate{StrategyContextWord, re})
			}
		} else if re := compile(`(?i)(` + regexp.QuoteMeta(ctx) + `)`); re != nil {
			out = append(out, candidate{StrategyContextPhrase, re})
		}
	}

	if !phrase {
		if re := suffixWordPattern(word); re != nil {
			out = append(out, candidate{StrategySuffixWord, re})
		}
	} else if re := suffixPhrasePattern(word); re != nil {
		out = append(out, candidate{StrategySuffixPhrase, re})
	}
	return out
}

// contextWordPatterns picks context tokens that look like an inflection of
// word, in context order. "crane" accepts "craning" and "craned" because the
// comparison drops a trailing e from the headword.
func contextWordPatterns(word, context string) []*regexp.Regexp {
	base := strings.ToLower(word)
	stem := strings.TrimSuffix(base, "e")

	var out []*regexp.Regexp
	for _, token := range strings.Fields(context) {
		bare := tokenPunct.ReplaceAllString(token, "")
		if bare == "" {
			continue
		}
		clean := strings.ToLower(bare)
		if !strings.HasPrefix(clean, stem) && !strings.HasPrefix(clean, base) {
			continue
		}
		if re := compile(`(?i)\b(` + regexp.QuoteMeta(bare) + `)\b`); re != nil {
			out = append(out, re)
		}
	}
	return out
}

func suffixWordPattern(word string) *regexp.Regexp {
	var pattern string
	if strings.HasSuffix(word, "e") {
		stem := regexp.QuoteMeta(strings.TrimSuffix(word, "e"))
		pattern = stem + `(?:e|es|ed|ing)`
	} else {
		pattern = regexp.QuoteMeta(word) + `(?:s|es|ed|ing)?`
	}
	return compile(`(?i)\b(` + pattern + `)\b`)
}

func suffixPhrasePattern(word string) *regexp.Regexp {
	parts := strings.Fields(word)
	if len(parts) < 2 {
		return nil
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	last := quoted[len(quoted)-1]
	pattern := strings.Join(quoted[:len(quoted)-1], `\s+`) + `\s+` + last + `(?:s|es)?`
	return compile(`(?i)(` + pattern + `)`)
}

// compile returns nil for a pattern RE2 refuses.
func compile(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	return re
}

// firstFree returns the first non-empty match of re that does not intersect
// any claimed span.
func firstFree(sentence string, re *regexp.Regexp, claimed []MatchSpan) ([]int, bool) {
	for _, loc := range re.FindAllStringIndex(sentence, -1) {
		if loc[1] <= loc[0] {
			continue
		}
		if !overlapsAny(loc[0], loc[1], claimed) {
			return loc, true
		}
	}
	return nil, false
}

func overlapsAny(start, end int, claimed []MatchSpan) bool {
	for _, c := range claimed {
		if start < c.End && c.Start < end {
			return true
		}
	}
	return false
}
