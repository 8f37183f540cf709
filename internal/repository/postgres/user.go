package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vocam/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUserExists creates user if not exists
func (r *UserRepo) EnsureUserExists(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID)
	return mapError(err, "ensure user exists")
}

// GetUser returns the user or nil if it does not exist
func (r *UserRepo) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var u domain.User
	query := `SELECT user_id, language_code, created_at FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&u.UserID, &u.LanguageCode, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapError(err, "get user")
	}
	return &u, nil
}

// SetLanguage stores the user's target language
func (r *UserRepo) SetLanguage(ctx context.Context, userID int64, languageCode string) error {
	query := `
		INSERT INTO users (user_id, language_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET language_code = EXCLUDED.language_code
	`
	_, err := r.db.ExecContext(ctx, query, userID, languageCode)
	return mapError(err, "set language")
}
