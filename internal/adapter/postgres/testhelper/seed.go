package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// SeedText inserts a text whose paragraphs are given as sentence lists and
// returns the stored text with its sentences in reading order.
func SeedText(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, paragraphs ...[]string) (domain.Text, []domain.Sentence) {
	t.Helper()
	ctx := context.Background()

	var text domain.Text
	err := pool.QueryRow(ctx,
		`INSERT INTO texts (user_id, title, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, title, content, reading_mode, scaffold_level, vocab_level, created_at, updated_at`,
		userID, "Seeded text "+uuid.NewString()[:8], "seeded",
	).Scan(&text.ID, &text.UserID, &text.Title, &text.Content,
		&text.ReadingMode, &text.ScaffoldLevel, &text.VocabLevel, &text.CreatedAt, &text.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedText insert text: %v", err)
	}

	var sentences []domain.Sentence
	global := 0
	for p, para := range paragraphs {
		for i, content := range para {
			pi, si := p, i
			s := domain.Sentence{
				TextID:              text.ID,
				SentenceIndex:       global,
				ParagraphIndex:      &pi,
				SentenceInParagraph: &si,
				Content:             content,
				SourceEngine:        "uax29",
			}
			err := pool.QueryRow(ctx,
				`INSERT INTO sentences (text_id, sentence_index, paragraph_index, sentence_in_paragraph, content, source_engine)
				 VALUES ($1, $2, $3, $4, $5, $6)
				 RETURNING id, created_at`,
				s.TextID, s.SentenceIndex, pi, si, s.Content, s.SourceEngine,
			).Scan(&s.ID, &s.CreatedAt)
			if err != nil {
				t.Fatalf("testhelper: SeedText insert sentence %d: %v", global, err)
			}
			sentences = append(sentences, s)
			global++
		}
	}

	return text, sentences
}
