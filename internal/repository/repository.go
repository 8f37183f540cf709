package repository

import (
	"context"

	"github.com/google/uuid"

	"vocam/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	EnsureUserExists(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	SetLanguage(ctx context.Context, userID int64, languageCode string) error
}

// VocabularyStore is the remote store client over words, translations and
// user_words. Writes filtered out by row-level policy report success with
// zero rows affected; callers that depend on a write must read it back.
type VocabularyStore interface {
	FindWordByText(ctx context.Context, text string) (*domain.Word, error)
	CreateWord(ctx context.Context, id uuid.UUID, text string) (*domain.Word, error)
	DeleteWord(ctx context.Context, id uuid.UUID) error
	GetWordsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error)

	UpsertTranslation(ctx context.Context, t domain.Translation) error
	GetTranslationsByWordIDs(ctx context.Context, wordIDs []uuid.UUID, lang string) ([]domain.Translation, error)

	FindUserWord(ctx context.Context, userID int64, wordID uuid.UUID) (*domain.UserWord, error)
	FindUserWordInLanguage(ctx context.Context, userID int64, text, lang string) (*domain.UserWord, error)
	GetUserWord(ctx context.Context, id uuid.UUID) (*domain.UserWord, error)
	CreateUserWord(ctx context.Context, uw domain.UserWord) (*domain.UserWord, error)
	UpdateProficiency(ctx context.Context, id uuid.UUID, proficiency int) (int64, error)
	DeleteUserWord(ctx context.Context, id uuid.UUID) (int64, error)
	ListUserWords(ctx context.Context, userID int64) ([]domain.UserWord, error)
	CountUserWords(ctx context.Context, userID int64) (int, error)

	CountByLanguage(ctx context.Context, userID int64) (map[string]int, error)
	ListUserWordTexts(ctx context.Context, userID int64) ([]string, error)
}

// ActivityRepository records learning activity for progress tracking.
type ActivityRepository interface {
	RecordActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error
}
