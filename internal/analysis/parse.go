// Package analysis turns model responses into sentence analysis bundles and
// holds the prompts and request limits of the analysis collaborator.
package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

var fencedBlock = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// Result is a parsed analysis response.
type Result struct {
	Translation string
	Insight     domain.Insight
	XRay        *domain.XRay
	Companion   *domain.Companion
	Knowledge   []domain.KnowledgeItem
}

// Analysis returns the bundle persisted alongside the translation.
func (r Result) Analysis() domain.Analysis {
	insight := r.Insight
	return domain.Analysis{
		Knowledge: r.Knowledge,
		Insight:   &insight,
		XRay:      r.XRay,
		Companion: r.Companion,
	}
}

// ParseError reports a model response that could not be decoded. Raw keeps
// the full response for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse analysis response: %v", e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{domain.ErrInvalidAnalysis, e.Err} }

type payload struct {
	Translation *string          `json:"translation"`
	Insight     *domain.Insight  `json:"insight"`
	XRay        *domain.XRay     `json:"xray"`
	Companion   json.RawMessage  `json:"companion"`
	Knowledge   []knowledgeEntry `json:"knowledge"`
}

type knowledgeEntry struct {
	Key     string          `json:"key"`
	Word    string          `json:"word"`
	IPA     string          `json:"ipa"`
	Def     string          `json:"def"`
	Clue    string          `json:"clue"`
	Diff    json.RawMessage `json:"diff"`
	Context string          `json:"context"`
}

// Parse decodes a model response. A fenced code block is unwrapped first;
// if the remainder is not valid JSON the text between the first '{' and the
// last '}' is tried. Missing fields get placeholders, diff is clamped into
// [1,6], missing keys are derived from the word, and duplicate keys keep
// their first occurrence.
func Parse(raw string) (Result, error) {
	body := raw
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		body = m[1]
	}

	var p payload
	err := json.Unmarshal([]byte(body), &p)
	if err != nil {
		first, last := strings.Index(body, "{"), strings.LastIndex(body, "}")
		if first == -1 || last <= first {
			return Result{}, &ParseError{Raw: raw, Err: err}
		}
		p = payload{}
		if err2 := json.Unmarshal([]byte(body[first:last+1]), &p); err2 != nil {
			return Result{}, &ParseError{Raw: raw, Err: err}
		}
	}

	return p.normalize(), nil
}

func (p payload) normalize() Result {
	res := Result{
		Translation: domain.NoTranslation,
		Insight:     domain.Insight{Tag: "Analysis", Text: domain.NoInsight},
		XRay:        p.XRay,
		Companion:   decodeCompanion(p.Companion),
		Knowledge:   []domain.KnowledgeItem{},
	}
	if p.Translation != nil && strings.TrimSpace(*p.Translation) != "" {
		res.Translation = strings.TrimSpace(*p.Translation)
	}
	if p.Insight != nil && strings.TrimSpace(p.Insight.Text) != "" {
		res.Insight = *p.Insight
		if res.Insight.Tag == "" {
			res.Insight.Tag = "Analysis"
		}
	}

	seen := make(map[string]struct{}, len(p.Knowledge))
	for _, e := range p.Knowledge {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			continue
		}
		key := strings.TrimSpace(e.Key)
		if key == "" {
			key = DeriveKey(word)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		res.Knowledge = append(res.Knowledge, domain.KnowledgeItem{
			Key:     key,
			Word:    word,
			IPA:     e.IPA,
			Def:     e.Def,
			Clue:    e.Clue,
			Diff:    parseDiff(e.Diff),
			Context: e.Context,
		})
	}
	return res
}

// DeriveKey builds a stable item key from a headword.
func DeriveKey(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), "_")
}

// parseDiff accepts numbers and numeric strings and clamps into [1,6].
// Anything unreadable counts as the easiest rank.
func parseDiff(raw json.RawMessage) domain.Difficulty {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return domain.MinDifficulty
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.MinDifficulty
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return domain.MinDifficulty
		}
		f = parsed
	}
	if math.IsNaN(f) {
		return domain.MinDifficulty
	}
	return domain.Difficulty(math.Round(math.Max(-100, math.Min(100, f)))).Clamp()
}

// decodeCompanion accepts either an object or a bare string.
func decodeCompanion(raw json.RawMessage) *domain.Companion {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var c domain.Companion
	if err := json.Unmarshal(raw, &c); err == nil {
		if strings.TrimSpace(c.Text) == "" {
			return nil
		}
		return &c
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && strings.TrimSpace(s) != "" {
		return &domain.Companion{Text: strings.TrimSpace(s)}
	}
	return nil
}

// IsParseError reports whether err is a *ParseError and returns it.
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}
