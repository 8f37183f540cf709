package postgres

import (
	"context"
)

// CountByLanguage counts the user's words per translation language in one
// joined query. A word translated into two languages counts once in each.
func (r *VocabularyRepo) CountByLanguage(ctx context.Context, userID int64) (map[string]int, error) {
	query := `
		SELECT t.language_code, COUNT(DISTINCT uw.id)
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		JOIN translations t ON t.word_id = w.id
		WHERE uw.user_id = $1
		GROUP BY t.language_code
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "count by language")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var lang string
		var count int
		if err := rows.Scan(&lang, &count); err != nil {
			return nil, err
		}
		counts[lang] = count
	}

	return counts, rows.Err()
}

// ListUserWordTexts returns the stored text of every word the user has.
func (r *VocabularyRepo) ListUserWordTexts(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT w.text
		FROM user_words uw
		JOIN words w ON w.id = uw.word_id
		WHERE uw.user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, mapError(err, "list user word texts")
	}
	defer rows.Close()

	texts := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts = append(texts, text)
	}

	return texts, rows.Err()
}
