package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocam/internal/repository"
)

// ProgressRecorder receives learning activity after a word is saved.
type ProgressRecorder interface {
	RecordLearningActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error
}

// ActivityRecorder stores learning activity in the activity repository
type ActivityRecorder struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
}

// NewActivityRecorder creates a new activity recorder
func NewActivityRecorder(repo repository.ActivityRepository, logger *zap.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, logger: logger}
}

// RecordLearningActivity appends an activity row for the saved word
func (r *ActivityRecorder) RecordLearningActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error {
	if err := r.repo.RecordActivity(ctx, userID, wordID, translationCount); err != nil {
		return err
	}

	r.logger.Debug("Learning activity recorded",
		zap.Int64("user_id", userID),
		zap.String("word_id", wordID.String()),
		zap.Int("translation_count", translationCount),
	)
	return nil
}
