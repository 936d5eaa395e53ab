package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/reading-copilot/internal/domain"
	"github.com/heartmarshall/reading-copilot/internal/smarttext"
)

type annotateFlags struct {
	knowledge string
	mode      string
	level     int
	vocab     string
	active    string
	cards     bool
}

func newAnnotateCmd() *cobra.Command {
	var f annotateFlags

	cmd := &cobra.Command{
		Use:   "annotate [file|-]",
		Short: "Annotate text offline and print the markup of each paragraph",
		Long: `Annotate runs the annotation pipeline without a database. Paragraphs
are numbered from 0; sentence ids have the form <paragraph>::<index>, which
is what --active expects. The knowledge file is a JSON array of items
({"key","word","def","clue","diff",...}) applied to every sentence.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			items, err := loadKnowledge(f.knowledge)
			if err != nil {
				return err
			}

			vocab := domain.VocabLevel(strings.ToUpper(f.vocab))
			if !vocab.IsValid() {
				return fmt.Errorf("unknown vocab level %q", f.vocab)
			}
			opts := smarttext.Options{
				Mode:      domain.ReadingMode(f.mode),
				Level:     domain.ScaffoldLevel(f.level),
				Threshold: vocab.Threshold(),
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, para := range smarttext.SegmentParagraphs(text) {
				p := smarttext.Paragraph{
					ID:               strconv.Itoa(i),
					Text:             para,
					Knowledge:        items,
					ActiveSentenceID: f.active,
				}
				fmt.Fprintln(out, smarttext.Annotate(p, opts))
			}

			if f.cards {
				b, err := json.MarshalIndent(smarttext.Cards(items, opts), "", "  ")
				if err != nil {
					return fmt.Errorf("encode cards: %w", err)
				}
				fmt.Fprintln(out, string(b))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.knowledge, "knowledge", "", "JSON file with knowledge items")
	cmd.Flags().StringVar(&f.mode, "mode", string(domain.ReadingModeFlow), "reading mode: flow or learn")
	cmd.Flags().IntVar(&f.level, "level", int(domain.DefaultScaffolding), "scaffold level: 1, 2 or 3")
	cmd.Flags().StringVar(&f.vocab, "vocab", string(domain.DefaultVocabLevel), "reader vocabulary level (A1..C2)")
	cmd.Flags().StringVar(&f.active, "active", "", "active sentence id, e.g. 0::1")
	cmd.Flags().BoolVar(&f.cards, "cards", false, "also print the learn-mode card panel as JSON")
	return cmd
}

func loadKnowledge(path string) ([]domain.KnowledgeItem, error) {
	if path == "" {
		return nil, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge: %w", err)
	}

	var items []domain.KnowledgeItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode knowledge: %w", err)
	}
	return items, nil
}
