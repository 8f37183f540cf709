package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"vocam/internal/domain"
)

// VocabularyRepo implements repository.VocabularyStore
type VocabularyRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewVocabularyRepo creates a new vocabulary repository
func NewVocabularyRepo(db *sql.DB) *VocabularyRepo {
	return &VocabularyRepo{db: db, now: time.Now}
}

// FindWordByText returns the visible word with the given normalized text.
// Returns nil, nil if no such row is visible.
func (r *VocabularyRepo) FindWordByText(ctx context.Context, text string) (*domain.Word, error) {
	var w domain.Word
	query := `SELECT id, text, created_at FROM words WHERE text = $1`
	err := r.db.QueryRowContext(ctx, query, text).Scan(&w.ID, &w.Text, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "find word by text")
	}
	return &w, nil
}

// CreateWord inserts a global word. A unique violation is returned as
// domain.ErrConflict: the row may exist but be hidden from this caller.
func (r *VocabularyRepo) CreateWord(ctx context.Context, id uuid.UUID, text string) (*domain.Word, error) {
	createdAt := r.now().UTC()
	query := `
		INSERT INTO words (id, text, created_at)
		VALUES ($1, $2, $3)
	`
	res, err := r.db.ExecContext(ctx, query, id, text, createdAt)
	if err != nil {
		return nil, mapError(err, "create word")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, domain.ErrPolicyBlocked
	}
	return &domain.Word{ID: id, Text: text, CreatedAt: createdAt}, nil
}

// DeleteWord removes a word. Used only to undo a word created in the same save.
func (r *VocabularyRepo) DeleteWord(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM words WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return mapError(err, "delete word")
}

// GetWordsByIDs loads many words in one query.
func (r *VocabularyRepo) GetWordsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error) {
	if len(ids) == 0 {
		return []domain.Word{}, nil
	}

	query, args, err := psql.
		Select("id", "text", "created_at").
		From("words").
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "get words by ids")
	}
	defer rows.Close()

	words := []domain.Word{}
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Text, &w.CreatedAt); err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, rows.Err()
}

// UpsertTranslation inserts or replaces the translation for (word, language).
func (r *VocabularyRepo) UpsertTranslation(ctx context.Context, t domain.Translation) error {
	query := `
		INSERT INTO translations (word_id, language_code, translated_text, example)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (word_id, language_code)
		DO UPDATE SET translated_text = EXCLUDED.translated_text, example = EXCLUDED.example
	`
	_, err := r.db.ExecContext(ctx, query, t.WordID, t.LanguageCode, t.Text, t.Example)
	return mapError(err, "upsert translation")
}

// GetTranslationsByWordIDs loads translations for many words in one query.
// An empty lang returns every language, oldest first.
func (r *VocabularyRepo) GetTranslationsByWordIDs(ctx context.Context, wordIDs []uuid.UUID, lang string) ([]domain.Translation, error) {
	if len(wordIDs) == 0 {
		return []domain.Translation{}, nil
	}

	builder := psql.
		Select("word_id", "language_code", "translated_text", "example", "created_at").
		From("translations").
		Where(sq.Eq{"word_id": wordIDs})
	if lang != "" {
		builder = builder.Where(sq.Eq{"language_code": lang})
	}

	query, args, err := builder.OrderBy("created_at ASC", "language_code ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "get translations by word ids")
	}
	defer rows.Close()

	translations := []domain.Translation{}
	for rows.Next() {
		var t domain.Translation
		var example sql.NullString
		if err := rows.Scan(&t.WordID, &t.LanguageCode, &t.Text, &example, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.Example = example.String
		translations = append(translations, t)
	}

	return translations, rows.Err()
}
