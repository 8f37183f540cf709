package service

import (
	"context"
	"fmt"

	"vocam/internal/domain"
	"vocam/internal/repository"
)

// UserService handles learner records and language preference
type UserService struct {
	userRepo        repository.UserRepository
	defaultLanguage string
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, defaultLanguage string) *UserService {
	return &UserService{
		userRepo:        userRepo,
		defaultLanguage: defaultLanguage,
	}
}

// EnsureUserExists creates user record if doesn't exist
func (s *UserService) EnsureUserExists(ctx context.Context, userID int64) error {
	return s.userRepo.EnsureUserExists(ctx, userID)
}

// Language returns the user's target language, falling back to the default
func (s *UserService) Language(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil || user.LanguageCode == "" {
		return s.defaultLanguage, nil
	}
	return user.LanguageCode, nil
}

// SetLanguage validates and stores the user's target language
func (s *UserService) SetLanguage(ctx context.Context, userID int64, code string) (string, error) {
	code = domain.NormalizeLanguage(code)
	if !domain.IsSupportedLanguage(code) {
		return "", fmt.Errorf("%w: unsupported language %q", domain.ErrValidation, code)
	}
	if err := s.userRepo.SetLanguage(ctx, userID, code); err != nil {
		return "", err
	}
	return code, nil
}
