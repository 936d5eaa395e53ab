// Package text implements the Text repository using PostgreSQL.
// Every query is scoped by user_id: another user's text is reported as
// domain.ErrNotFound.
package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/reading-copilot/internal/adapter/postgres"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

const entity = "text"

var columns = []string{
	"id", "user_id", "title", "content", "scaffolding_data",
	"reading_mode", "scaffold_level", "vocab_level", "current_paragraph_id",
	"created_at", "updated_at",
}

// Repo provides text persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new text repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a text owned by userID.
func (r *Repo) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("texts").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	t, err := scanText(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return t, nil
}

// ListByUser returns the user's texts, most recently updated first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("texts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}
	defer rows.Close()

	texts := []domain.Text{}
	for rows.Next() {
		t, err := scanText(rows)
		if err != nil {
			return nil, fmt.Errorf("scan text: %w", err)
		}
		texts = append(texts, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list texts: %w", err)
	}
	return texts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a text and returns it with generated fields filled.
func (r *Repo) Create(ctx context.Context, t domain.Text) (*domain.Text, error) {
	query, args, err := postgres.Builder().
		Insert("texts").
		Columns("user_id", "title", "content", "scaffolding_data", "reading_mode", "scaffold_level", "vocab_level").
		Values(t.UserID, t.Title, t.Content, nullJSON(t.ScaffoldingData), string(t.ReadingMode), int(t.ScaffoldLevel), string(t.VocabLevel)).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	created, err := scanText(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, "new")
	}
	return created, nil
}

// Update applies a TextPatch. An empty patch just reloads the text.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, id int64, p domain.TextPatch) (*domain.Text, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, userID, id)
	}

	b := postgres.Builder().Update("texts")
	if p.Title != nil {
		b = b.Set("title", *p.Title)
	}
	if p.Content != nil {
		b = b.Set("content", *p.Content)
	}
	if p.SetScaffolding {
		b = b.Set("scaffolding_data", nullJSON(p.ScaffoldingData))
	}

	return r.updateReturning(ctx, b, userID, id)
}

// UpdateProgress applies a ProgressPatch. An empty patch just reloads the text.
func (r *Repo) UpdateProgress(ctx context.Context, userID uuid.UUID, id int64, p domain.ProgressPatch) (*domain.Text, error) {
	if p.IsEmpty() {
		return r.GetByID(ctx, userID, id)
	}

	b := postgres.Builder().Update("texts")
	if p.ReadingMode != nil {
		b = b.Set("reading_mode", string(*p.ReadingMode))
	}
	if p.ScaffoldLevel != nil {
		b = b.Set("scaffold_level", int(*p.ScaffoldLevel))
	}
	if p.VocabLevel != nil {
		b = b.Set("vocab_level", string(*p.VocabLevel))
	}
	if p.CurrentParagraphID != nil {
		b = b.Set("current_paragraph_id", *p.CurrentParagraphID)
	}

	return r.updateReturning(ctx, b, userID, id)
}

// Touch bumps updated_at, used when sentences change without a text column change.
func (r *Repo) Touch(ctx context.Context, userID uuid.UUID, id int64) error {
	query, args, err := postgres.Builder().
		Update("texts").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// Delete removes a text; its sentences cascade.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	query, args, err := postgres.Builder().
		Delete("texts").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) updateReturning(ctx context.Context, b squirrel.UpdateBuilder, userID uuid.UUID, id int64) (*domain.Text, error) {
	query, args, err := b.
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	t, err := scanText(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return t, nil
}

func scanText(row pgx.Row) (*domain.Text, error) {
	var (
		t           domain.Text
		scaffolding []byte
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Content, &scaffolding,
		&t.ReadingMode, &t.ScaffoldLevel, &t.VocabLevel, &t.CurrentParagraphID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(scaffolding) > 0 {
		t.ScaffoldingData = scaffolding
	}
	return &t, nil
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}

// nullJSON maps an empty document to SQL NULL.
func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
