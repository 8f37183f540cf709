package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// ActivityRepo implements repository.ActivityRepository
type ActivityRepo struct {
	db *sql.DB
}

// NewActivityRepo creates a new learning activity repository
func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

// RecordActivity appends a learning activity row
func (r *ActivityRepo) RecordActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error {
	query := `
		INSERT INTO learning_activity (user_id, word_id, translation_count)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, userID, wordID, translationCount)
	return mapError(err, "record activity")
}
