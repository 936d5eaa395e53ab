// Package smarttext annotates reading text with vocabulary scaffolding.
// Every function in this package is pure: no I/O, no logging, no shared state.
package smarttext

import (
	"regexp"
	"strings"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// Engine names the sentence-boundary strategy that produced a segmentation.
type Engine string

const (
	EngineUAX29 Engine = "uax29"
	EngineRegex Engine = "regex"
)

func (e Engine) String() string { return string(e) }

var (
	lineBreaks = regexp.MustCompile(`\n+`)

	// A sentence runs up to one or more terminators, optionally followed by
	// closing quotes or brackets. An unterminated tail is its own sentence.
	// Abbreviations and decimals are not protected.
	fallbackSentence = regexp.MustCompile(`[^.!?。！？\n]+[.!?。！？]+(?:["'”’)\]]+)?|[^.!?。！？\n]+$`)
)

// Segment splits text into trimmed, non-empty sentences using Unicode
// sentence boundaries, falling back to the punctuation regex.
func Segment(text string) []string {
	out, _ := SegmentWith(text, EngineUAX29)
	return out
}

// SegmentWith splits text with the preferred engine and reports the engine
// that actually produced the result. EngineRegex skips Unicode segmentation.
func SegmentWith(text string, engine Engine) ([]string, Engine) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, engine
	}

	if engine != EngineRegex {
		var out []string
		for _, line := range lines {
			out = append(out, unicodeSentences(line)...)
		}
		if len(out) > 0 {
			return out, EngineUAX29
		}
	}

	var out []string
	for _, line := range lines {
		out = append(out, regexSentences(line)...)
	}
	return out, EngineRegex
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	for _, line := range lineBreaks.Split(text, -1) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func unicodeSentences(line string) []string {
	var out []string
	iter := sentences.FromString(line)
	for iter.Next() {
		if s := strings.TrimSpace(iter.Value()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func regexSentences(line string) []string {
	matches := fallbackSentence.FindAllString(line, -1)
	if len(matches) == 0 {
		return []string{line}
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}
