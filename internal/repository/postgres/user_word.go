package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"vocam/internal/domain"
)

const userWordColumns = `uw.id, uw.user_id, uw.word_id, uw.proficiency, uw.learned_at`

func scanUserWord(row interface{ Scan(dest ...any) error }) (*domain.UserWord, error) {
	var uw domain.UserWord
	if err := row.Scan(&uw.ID, &uw.UserID, &uw.WordID, &uw.Proficiency, &uw.LearnedAt); err != nil {
		return nil, err
	}
	return &uw, nil
}

// queryUserWord runs a single-row user word query. Returns nil, nil when no
// row is visible.
func (r *VocabularyRepo) queryUserWord(ctx context.Context, op, query string, args ...any) (*domain.UserWord, error) {
	uw, err := scanUserWord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, op)
	}
	return uw, nil
}

// FindUserWord returns the user's association with a word in any language.
func (r *VocabularyRepo) FindUserWord(ctx context.Context, userID int64, wordID uuid.UUID) (*domain.UserWord, error) {
	query := `SELECT ` + userWordColumns + ` FROM user_words uw WHERE uw.user_id = $1 AND uw.word_id = $2`
	return r.queryUserWord(ctx, "find user word", query, userID, wordID)
}

// FindUserWordInLanguage returns the user's association with the word whose
// normalized text is given, only if that word has a translation in lang.
func (r *VocabularyRepo) FindUserWordInLanguage(ctx context.Context, userID int64, text, lang string) (*domain.UserWord, error) {
	query := `
		SELECT ` + userWordColumns + `
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		JOIN translations t ON t.word_id = w.id
		WHERE uw.user_id = $1 AND w.text = $2 AND t.language_code = $3
		LIMIT 1
	`
	return r.queryUserWord(ctx, "find user word in language", query, userID, text, lang)
}

// GetUserWord reads a user word by primary key. Used as the verification read
// after a write.
func (r *VocabularyRepo) GetUserWord(ctx context.Context, id uuid.UUID) (*domain.UserWord, error) {
	query := `SELECT ` + userWordColumns + ` FROM user_words uw WHERE uw.id = $1`
	return r.queryUserWord(ctx, "get user word", query, id)
}

// CreateUserWord inserts the user's association with a word.
// Returns domain.ErrConflict if the user already has the word.
func (r *VocabularyRepo) CreateUserWord(ctx context.Context, uw domain.UserWord) (*domain.UserWord, error) {
	if uw.LearnedAt.IsZero() {
		uw.LearnedAt = r.now().UTC()
	}
	query := `
		INSERT INTO user_words (id, user_id, word_id, proficiency, learned_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, uw.ID, uw.UserID, uw.WordID, uw.Proficiency, uw.LearnedAt)
	if err != nil {
		return nil, mapError(err, "create user word")
	}
	return &uw, nil
}

// UpdateProficiency sets the proficiency of a user word and returns the
// number of rows affected.
func (r *VocabularyRepo) UpdateProficiency(ctx context.Context, id uuid.UUID, proficiency int) (int64, error) {
	query := `UPDATE user_words SET proficiency = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, proficiency)
	if err != nil {
		return 0, mapError(err, "update proficiency")
	}
	return res.RowsAffected()
}

// DeleteUserWord removes a user word and returns the number of rows affected.
// Words and translations are shared and never deleted here.
func (r *VocabularyRepo) DeleteUserWord(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `DELETE FROM user_words WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, mapError(err, "delete user word")
	}
	return res.RowsAffected()
}

// ListUserWords returns all of the user's words, newest first.
func (r *VocabularyRepo) ListUserWords(ctx context.Context, userID int64) ([]domain.UserWord, error) {
	query := `
		SELECT ` + userWordColumns + `
		FROM user_words uw
		WHERE uw.user_id = $1
		ORDER BY uw.learned_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list user words")
	}
	defer rows.Close()

	words := []domain.UserWord{}
	for rows.Next() {
		uw, err := scanUserWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *uw)
	}

	return words, rows.Err()
}

// CountUserWords returns the number of user word rows for the user.
func (r *VocabularyRepo) CountUserWords(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM user_words WHERE user_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, mapError(err, "count user words")
	}
	return count, nil
}
