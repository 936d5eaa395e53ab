// Package sentence implements the Sentence repository using PostgreSQL.
// Paragraph paging groups rows by COALESCE(paragraph_index, sentence_index).
package sentence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const (
	entity       = "sentence"
	paragraphKey = "COALESCE(paragraph_index, sentence_index)"

	// insertChunk keeps multi-row inserts well under the 65535 parameter limit.
	insertChunk = 500
)

var columns = []string{
	"id", "text_id", "sentence_index", "paragraph_index", "sentence_in_paragraph",
	"content", "translation", "analysis", "source_engine", "created_at",
}

// Repo provides sentence persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new sentence repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a sentence whose text belongs to userID.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error) {
	query, args, err := postgres.Builder().
		Select(qualified("s")...).
		From("sentences s").
		Join("texts t ON t.id = s.text_id").
		Where(squirrel.Eq{"s.id": id, "t.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	s, err := scanSentence(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return s, nil
}

// ListByText returns every sentence of a text in reading order.
func (r *Repo) ListByText(ctx context.Context, textID int64) ([]domain.Sentence, error) {
	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		OrderBy("sentence_index"))
}

// CountParagraphs returns the number of distinct paragraph keys of a text.
func (r *Repo) CountParagraphs(ctx context.Context, textID int64) (int, error) {
	query, args, err := postgres.Builder().
		Select("count(DISTINCT " + paragraphKey + ")").
		From("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "text", textID)
	}
	return n, nil
}

// ParagraphOrdinal returns the 0-based position, among the text's distinct
// paragraph keys, of the paragraph containing sentenceID.
func (r *Repo) ParagraphOrdinal(ctx context.Context, textID, sentenceID int64) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := postgres.Builder().
		Select(paragraphKey).
		From("sentences").
		Where(squirrel.Eq{"id": sentenceID, "text_id": textID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var key int
	if err := q.QueryRow(ctx, query, args...).Scan(&key); err != nil {
		return 0, postgres.MapError(err, entity, sentenceID)
	}

	query, args, err = postgres.Builder().
		Select("count(DISTINCT " + paragraphKey + ")").
		From("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		Where(squirrel.Lt{paragraphKey: key}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var ordinal int
	if err := q.QueryRow(ctx, query, args...).Scan(&ordinal); err != nil {
		return 0, postgres.MapError(err, entity, sentenceID)
	}
	return ordinal, nil
}

// ListParagraphPage returns the sentences of the paragraphs at positions
// [offset, offset+limit) in paragraph-key order.
func (r *Repo) ListParagraphPage(ctx context.Context, textID int64, offset, limit int) ([]domain.Sentence, error) {
	query, args, err := postgres.Builder().
		Select("DISTINCT " + paragraphKey + " AS paragraph_key").
		From("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		OrderBy("paragraph_key").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list paragraph keys: %w", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("collect paragraph keys: %w", err)
	}
	if len(keys) == 0 {
		return []domain.Sentence{}, nil
	}

	return r.list(ctx, postgres.Builder().
		Select(columns...).
		From("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		Where(squirrel.Eq{paragraphKey: keys}).
		OrderBy("sentence_index"))
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertBatch inserts segmented sentences for a text in chunks and returns
// the number of rows written.
func (r *Repo) InsertBatch(ctx context.Context, textID int64, sentences []domain.NewSentence) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	written := 0

	for start := 0; start < len(sentences); start += insertChunk {
		end := min(start+insertChunk, len(sentences))

		b := postgres.Builder().
			Insert("sentences").
			Columns("text_id", "sentence_index", "paragraph_index", "sentence_in_paragraph", "content", "source_engine")
		for _, s := range sentences[start:end] {
			b = b.Values(textID, s.SentenceIndex, s.ParagraphIndex, s.SentenceInParagraph, s.Content, s.SourceEngine)
		}

		query, args, err := b.ToSql()
		if err != nil {
			return written, fmt.Errorf("build query: %w", err)
		}
		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return written, postgres.MapError(err, "text", textID)
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}

// DeleteByText removes every sentence of a text.
func (r *Repo) DeleteByText(ctx context.Context, textID int64) (int64, error) {
	query, args, err := postgres.Builder().
		Delete("sentences").
		Where(squirrel.Eq{"text_id": textID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "text", textID)
	}
	return tag.RowsAffected(), nil
}

// Update replaces translation and analysis in a single statement. The text
// must belong to userID.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, userID, id)
	}

	b := postgres.Builder().Update("sentences")
	if p.Translation != nil {
		b = b.Set("translation", *p.Translation)
	}
	if p.Analysis != nil {
		raw, err := json.Marshal(p.Analysis)
		if err != nil {
			return nil, fmt.Errorf("marshal analysis: %w", err)
		}
		b = b.Set("analysis", raw)
	}

	query, args, err := b.
		Where(squirrel.Eq{"id": id}).
		Where("EXISTS (SELECT 1 FROM texts t WHERE t.id = sentences.text_id AND t.user_id = ?)", userID).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	s, err := scanSentence(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Sentence, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	defer rows.Close()

	out := []domain.Sentence{}
	for rows.Next() {
		s, err := scanSentence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sentence: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sentences: %w", err)
	}
	return out, nil
}

func scanSentence(row pgx.Row) (*domain.Sentence, error) {
	var (
		s        domain.Sentence
		analysis []byte
	)
	err := row.Scan(
		&s.ID, &s.TextID, &s.SentenceIndex, &s.ParagraphIndex, &s.SentenceInParagraph,
		&s.Content, &s.Translation, &analysis, &s.SourceEngine, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(analysis) > 0 {
		var a domain.Analysis
		if err := json.Unmarshal(analysis, &a); err != nil {
			return nil, fmt.Errorf("decode analysis of sentence %d: %w", s.ID, err)
		}
		s.Analysis = &a
	}
	return &s, nil
}

func qualified(alias string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}
