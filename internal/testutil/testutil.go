package testutil

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocam/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, languageCode string) *domain.User {
	return &domain.User{
		UserID:       userID,
		LanguageCode: languageCode,
		CreatedAt:    time.Now(),
	}
}

// NewTestWord creates a test word
func NewTestWord(text string) *domain.Word {
	return &domain.Word{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewTestUserWord creates a test user word for the given word
func NewTestUserWord(userID int64, wordID uuid.UUID) *domain.UserWord {
	return &domain.UserWord{
		ID:        uuid.New(),
		UserID:    userID,
		WordID:    wordID,
		LearnedAt: time.Now(),
	}
}

// NewTestInput creates a captured word with an example sentence
func NewTestInput(original, translation string) domain.WordInput {
	return domain.WordInput{
		Original:       original,
		Translation:    translation,
		Example:        "Ex: " + translation,
		ExampleEnglish: "Ex: " + original,
	}
}
