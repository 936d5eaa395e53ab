package smarttext

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	terminalStrong = regexp.MustCompile(`[.!?…。！？]["')\]}”’]*$`)
	softBreak      = regexp.MustCompile(`[,;:，；：、]["')\]}”’]*$`)
	listMarker     = regexp.MustCompile(`(?i)^\s*(?:[-•*]|\(?\d+[.)]|\([a-z]\)|[a-z][.)]|[ivxlcdm]+[.)]|[一二三四五六七八九十]+[、.)])\s+`)
	titleCase      = regexp.MustCompile(`^[A-Z][A-Za-z0-9'_-]*(?:\s+[A-Z][A-Za-z0-9'_-]*){0,8}$`)
	headingHint    = regexp.MustCompile(`(?i)^(?:chapter|section|part|appendix|introduction|conclusion|preface)\b`)
	chapterCN      = regexp.MustCompile(`^第[一二三四五六七八九十百千0-9]+[章节回篇部]`)
	leadingWrap    = regexp.MustCompile(`^["'(\[{<“‘]+`)
	cjkChar        = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	latinChar      = regexp.MustCompile(`[A-Za-z]`)
	doubleQuote    = regexp.MustCompile(`["“”]`)
	dialogueQuote  = regexp.MustCompile(`^["“‘']`)
	dialogueDash   = regexp.MustCompile(`^[-—]\s+`)
	blankParagraph = regexp.MustCompile(`\n\s*\n+`)

	spacesTabs     = regexp.MustCompile(`[ \t]+`)
	spaceBeforeAsc = regexp.MustCompile(`\s+([,.;:!?])`)
	spaceBeforeCJK = regexp.MustCompile(`\s+([。！？；：，、])`)
	openParen      = regexp.MustCompile(`\(\s+`)
	closeParen     = regexp.MustCompile(`\s+\)`)
)

type lineFeatures struct {
	text               string
	length             int
	indent             int
	startsLower        bool
	startsSentenceLike bool
	isListItem         bool
	isHeading          bool
	isDialogue         bool
	endsTerminal       bool
	endsSoftBreak      bool
	endsHyphen         bool
}

// WrapProfile summarises the line layout of a text.
type WrapProfile struct {
	HardWrapped bool
	LineWidth   float64
	VerseLike   bool
	CJKDominant bool
}

// SegmentParagraphs splits pasted or OCR text into paragraphs by scoring
// every line break, so hard-wrapped prose is rejoined while headings, list
// items and verse keep their own lines.
func SegmentParagraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	rawLines := strings.Split(normalized, "\n")
	profile := DetectWrapProfile(rawLines)
	threshold := boundaryThreshold(profile)

	var (
		paragraphs []string
		current    string
		prev       *lineFeatures
		blanks     int
		openQuotes int
	)
	for _, raw := range rawLines {
		if strings.TrimSpace(raw) == "" {
			blanks++
			continue
		}

		line := buildLineFeatures(raw)
		if prev == nil {
			current = line.text
			openQuotes = countQuotes(line.text)
		} else if boundaryScore(*prev, line, blanks, profile, openQuotes) >= threshold {
			if p := cleanParagraph(current); p != "" {
				paragraphs = append(paragraphs, p)
			}
			current = line.text
			openQuotes = countQuotes(line.text)
		} else {
			current = joinLine(current, line.text)
			openQuotes += countQuotes(line.text)
		}

		prev = &line
		blanks = 0
	}

	if tail := cleanParagraph(current); tail != "" {
		paragraphs = append(paragraphs, tail)
	}
	return paragraphs
}

// SplitBlankLineParagraphs keeps the blank-line paragraphs of imported
// documents whose layout was already reconstructed upstream.
func SplitBlankLineParagraphs(text string) []string {
	var out []string
	for _, p := range blankParagraph.Split(strings.ReplaceAll(text, "\r\n", "\n"), -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DetectWrapProfile inspects line widths and ratios to tell hard-wrapped
// prose and verse apart from free-flowing text. Fewer than four non-empty
// lines yield the zero profile.
func DetectWrapProfile(rawLines []string) WrapProfile {
	var nonEmpty []string
	for _, l := range rawLines {
		if l = strings.TrimSpace(l); l != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) < 4 {
		return WrapProfile{}
	}

	lengths := make([]float64, len(nonEmpty))
	var sum float64
	for i, l := range nonEmpty {
		lengths[i] = float64(utf8.RuneCountInString(l))
		sum += lengths[i]
	}
	width := median(lengths)
	if width <= 0 {
		return WrapProfile{}
	}

	n := float64(len(nonEmpty))
	mean := sum / n
	var variance float64
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	cv := math.Sqrt(variance/n) / math.Max(1, width)

	blankRatio := float64(len(rawLines)-len(nonEmpty)) / math.Max(1, float64(len(rawLines)))
	var terminal, hyphen float64
	for _, l := range nonEmpty {
		if terminalStrong.MatchString(l) {
			terminal++
		}
		if strings.HasSuffix(l, "-") {
			hyphen++
		}
	}
	terminalRatio := terminal / n
	hyphenRatio := hyphen / n

	joined := strings.Join(nonEmpty, "")
	cjk := float64(len(cjkChar.FindAllStringIndex(joined, -1)))
	latin := float64(len(latinChar.FindAllStringIndex(joined, -1)))
	cjkDominant := cjk >= 30 && cjk >= latin*1.2

	verse := width < 45 && cv < 0.55 && blankRatio < 0.2 && terminalRatio < 0.45
	hard := (width >= 45 && width <= 120 && cv <= 0.34 && blankRatio <= 0.3 && terminalRatio <= 0.58) ||
		(width >= 35 && width <= 120 && cv <= 0.4 && hyphenRatio >= 0.03 && blankRatio <= 0.35) ||
		(cjkDominant && width >= 18 && width <= 55 && cv <= 0.42 && blankRatio <= 0.35 && terminalRatio <= 0.85)

	return WrapProfile{
		HardWrapped: hard && !verse,
		LineWidth:   width,
		VerseLike:   verse,
		CJKDominant: cjkDominant,
	}
}

func median(xs []float64) float64 {
	s := slices.Clone(xs)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

func buildLineFeatures(raw string) lineFeatures {
	raw = strings.TrimRightFunc(raw, unicode.IsSpace)
	text := strings.TrimSpace(raw)
	indent := utf8.RuneCountInString(raw) - utf8.RuneCountInString(strings.TrimLeft(raw, " \t"))

	return lineFeatures{
		text:               text,
		length:             utf8.RuneCountInString(text),
		indent:             indent,
		startsLower:        startsLowercase(text),
		startsSentenceLike: startsSentenceLike(text),
		isListItem:         listMarker.MatchString(text),
		isHeading:          IsHeading(text),
		isDialogue:         dialogueQuote.MatchString(text) || dialogueDash.MatchString(text),
		endsTerminal:       terminalStrong.MatchString(text),
		endsSoftBreak:      softBreak.MatchString(text),
		endsHyphen:         strings.HasSuffix(text, "-"),
	}
}

func firstVisible(text string) rune {
	compact := strings.TrimSpace(text)
	if compact == "" {
		return 0
	}
	if trimmed := leadingWrap.ReplaceAllString(compact, ""); trimmed != "" {
		r, _ := utf8.DecodeRuneInString(trimmed)
		return r
	}
	r, _ := utf8.DecodeRuneInString(compact)
	return r
}

func startsSentenceLike(text string) bool {
	r := firstVisible(text)
	switch {
	case r == 0:
		return false
	case unicode.IsDigit(r), r >= 'A' && r <= 'Z', r >= 0x4e00 && r <= 0x9fff:
		return true
	}
	return r == '#' || r == '@' || r == '$'
}

func startsLowercase(text string) bool {
	r := firstVisible(text)
	return r != 0 && unicode.IsLetter(r) && unicode.IsLower(r)
}

// IsHeading reports whether a single line reads as a heading: all caps,
// Title Case, a chapter or section marker, or a short line ending in a colon.
func IsHeading(line string) bool {
	compact := strings.TrimSpace(line)
	if compact == "" || listMarker.MatchString(compact) {
		return false
	}
	if utf8.RuneCountInString(compact) > 90 {
		return false
	}
	if strings.HasSuffix(compact, ".") || strings.HasSuffix(compact, "!") || strings.HasSuffix(compact, "?") {
		return false
	}

	words := len(strings.Fields(compact))
	switch {
	case isUpper(compact) && words <= 12:
		return true
	case titleCase.MatchString(compact) && words <= 10:
		return true
	case headingHint.MatchString(compact), chapterCN.MatchString(compact):
		return true
	}
	return words <= 8 && strings.HasSuffix(compact, ":")
}

// isUpper is true when s has at least one cased letter and no lowercase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

func countQuotes(text string) int {
	return len(doubleQuote.FindAllStringIndex(text, -1))
}

func shortLineThreshold(p WrapProfile) int {
	switch {
	case p.LineWidth == 0:
		return 40
	case p.HardWrapped:
		factor := 0.62
		if p.CJKDominant {
			factor = 0.82
		}
		return max(10, int(p.LineWidth*factor))
	}
	return max(28, int(p.LineWidth*0.7))
}

func boundaryScore(prev, curr lineFeatures, blanks int, p WrapProfile, openQuotes int) float64 {
	var score float64

	if blanks > 0 {
		score += 5 + float64(min(blanks, 2))*0.4
	}
	switch {
	case p.VerseLike && blanks == 0:
		score += 1.8
	case !p.HardWrapped && blanks == 0:
		score += 0.7
	}

	if curr.isHeading {
		score += 3.2
	}
	switch {
	case curr.isListItem && !prev.isListItem:
		score += 2.3
	case curr.isListItem && prev.isListItem:
		score += 1.9
	}
	if curr.indent > prev.indent+1 {
		score += 1.4
	}
	if prev.endsTerminal && curr.startsSentenceLike {
		score += 1.5
	}
	if prev.endsTerminal && curr.isDialogue {
		score += 0.8
	}
	if prev.length <= shortLineThreshold(p) && curr.startsSentenceLike && prev.endsTerminal {
		score += 1.2
	}
	if prev.isHeading && curr.startsSentenceLike {
		score += 2.0
	}

	if prev.endsHyphen && curr.startsLower {
		score -= 4.0
	}
	if !prev.endsTerminal && curr.startsLower {
		score -= 1.8
	}
	if prev.endsSoftBreak && curr.startsLower {
		score -= 1.4
	}
	if prev.endsSoftBreak && curr.startsSentenceLike && p.HardWrapped {
		score -= 0.8
	}
	if p.HardWrapped && !prev.endsTerminal {
		if prev.length >= max(20, int(p.LineWidth*0.85)) {
			score -= 1.3
		}
		if math.Abs(float64(prev.length)-p.LineWidth) <= 6 {
			score -= 0.9
		}
	}
	if openQuotes%2 == 1 && !curr.isHeading && !curr.isListItem {
		score -= 1.2
	}
	return score
}

func boundaryThreshold(p WrapProfile) float64 {
	switch {
	case p.VerseLike:
		return 1.1
	case p.HardWrapped:
		return 2.5
	}
	return 1.2
}

func joinLine(prev, curr string) string {
	prev = strings.TrimRightFunc(prev, unicode.IsSpace)
	curr = strings.TrimLeftFunc(curr, unicode.IsSpace)
	if prev == "" {
		return curr
	}
	first, _ := utf8.DecodeRuneInString(curr)
	switch {
	case strings.HasSuffix(prev, "-") && curr != "" && unicode.IsLower(first):
		return strings.TrimSuffix(prev, "-") + curr
	case strings.HasSuffix(prev, "/"), strings.HasSuffix(prev, "("):
		return prev + curr
	}
	return prev + " " + curr
}

func cleanParagraph(text string) string {
	s := strings.TrimSpace(text)
	s = spacesTabs.ReplaceAllString(s, " ")
	s = spaceBeforeAsc.ReplaceAllString(s, "$1")
	s = spaceBeforeCJK.ReplaceAllString(s, "$1")
	s = openParen.ReplaceAllString(s, "(")
	s = closeParen.ReplaceAllString(s, ")")
	return strings.TrimSpace(s)
}
