package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vocam/internal/domain"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) EnsureUserExists(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetLanguage(ctx context.Context, userID int64, languageCode string) error {
	args := m.Called(ctx, userID, languageCode)
	return args.Error(0)
}

// MockActivityRepository is a mock for ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) RecordActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error {
	args := m.Called(ctx, userID, wordID, translationCount)
	return args.Error(0)
}

// MockProgressRecorder is a mock for ProgressRecorder
type MockProgressRecorder struct {
	mock.Mock
}

func (m *MockProgressRecorder) RecordLearningActivity(ctx context.Context, userID int64, wordID uuid.UUID, translationCount int) error {
	args := m.Called(ctx, userID, wordID, translationCount)
	return args.Error(0)
}

// MockTranslator is a mock for Translator
type MockTranslator struct {
	mock.Mock
}

func (m *MockTranslator) Translate(ctx context.Context, word, lang string) (string, error) {
	args := m.Called(ctx, word, lang)
	return args.String(0), args.Error(1)
}

func (m *MockTranslator) ExampleSentence(ctx context.Context, word, lang string) (domain.Example, error) {
	args := m.Called(ctx, word, lang)
	return args.Get(0).(domain.Example), args.Error(1)
}
