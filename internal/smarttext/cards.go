package smarttext

import "github.com/heartmarshall/reading-copilot/internal/domain"

// Card is an entry of the learn-mode knowledge panel.
type Card struct {
	domain.KnowledgeItem
	// Guess hides the definition until the reader reveals the card.
	Guess bool `json:"guess"`
}

// Cards lists the panel entries for items that pass the threshold, first
// occurrence of each key wins. Flow mode has no panel.
func Cards(items []domain.KnowledgeItem, opts Options) []Card {
	if opts.Mode != domain.ReadingModeLearn {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	var out []Card
	for _, it := range FilterByThreshold(items, opts.Threshold) {
		if _, dup := seen[it.Key]; dup {
			continue
		}
		seen[it.Key] = struct{}{}
		out = append(out, Card{
			KnowledgeItem: it,
			Guess:         opts.Level >= domain.ScaffoldLevelBare && !opts.Toggles.IsRevealed(it.Key),
		})
	}
	return out
}
