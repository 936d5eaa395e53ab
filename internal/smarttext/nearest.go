package smarttext

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// DefaultNearestThreshold is the minimum Jaro-Winkler similarity for Nearest.
const DefaultNearestThreshold = 0.85

// Suggestion is the sentence token closest to an unmatched headword.
type Suggestion struct {
	Token string
	Score float64
}

// Nearest finds the sentence token most similar to word, such as
// "travelled" for "travel", which the suffix rules cannot reach. It only
// explains misses and never affects matching. ok is false when nothing
// reaches threshold.
func Nearest(sentence, word string, threshold float64) (Suggestion, bool) {
	target := strings.ToLower(strings.TrimSpace(word))
	if target == "" {
		return Suggestion{}, false
	}

	var best Suggestion
	for _, tok := range strings.Fields(sentence) {
		tok = strings.TrimFunc(tok, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) })
		if tok == "" {
			continue
		}
		score := matchr.JaroWinkler(strings.ToLower(tok), target, false)
		if score > best.Score {
			best = Suggestion{Token: tok, Score: score}
		}
	}
	return best, best.Score >= threshold
}
