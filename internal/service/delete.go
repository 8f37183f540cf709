package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocam/internal/cache"
	"vocam/internal/domain"
)

// DeleteWord removes the user's association with a word. compositeID is
// "{userWordID}_{languageCode}"; the language part is ignored. Shared words
// and translations are left untouched. A row that is already gone counts as
// deleted.
func (s *Synchronizer) DeleteWord(ctx context.Context, compositeID string) (bool, error) {
	id, err := domain.ParseCompositeID(compositeID)
	if err != nil {
		return false, err
	}

	uw, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.GetUserWord(ctx, id)
	})
	if err != nil {
		return false, fmt.Errorf("get user word: %w", err)
	}
	if uw == nil {
		s.logger.Info("Vocabulary word already deleted", zap.String("id", compositeID))
		return true, nil
	}

	languages := s.wordLanguages(ctx, uw.WordID, domain.CompositeLanguage(compositeID))

	n, err := retryOnce(ctx, func() (int64, error) {
		return s.store.DeleteUserWord(ctx, id)
	})
	if errors.Is(err, domain.ErrNotFound) {
		n, err = 0, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete user word: %w", err)
	}

	if n == 0 {
		still, err := s.store.GetUserWord(ctx, id)
		if err != nil {
			return false, fmt.Errorf("verify delete: %w", err)
		}
		if still != nil {
			return false, fmt.Errorf("delete user word %s: %w", id, domain.ErrPolicyBlocked)
		}
	}

	s.invalidateLists(uw.UserID)
	s.recovery.InvalidateKeys([]cache.Key{{UserID: uw.UserID, WordID: uw.WordID}})

	// Also published when another writer removed the row first.
	s.events.Publish(domain.VocabularyChanged{
		UserID:     uw.UserID,
		Action:     domain.ActionDeleted,
		WordIDs:    []uuid.UUID{uw.WordID},
		Languages:  languages,
		CountDelta: -int(n),
	})

	s.logger.Info("Vocabulary word deleted",
		zap.Int64("user_id", uw.UserID),
		zap.String("user_word_id", id.String()),
		zap.Strings("languages", languages),
	)

	return true, nil
}

// wordLanguages lists the languages a word is translated into, falling back
// to the language suffix of the id.
func (s *Synchronizer) wordLanguages(ctx context.Context, wordID uuid.UUID, fallback string) []string {
	ts, err := s.store.GetTranslationsByWordIDs(ctx, []uuid.UUID{wordID}, "")
	if err != nil || len(ts) == 0 {
		if fallback == "" {
			return []string{}
		}
		return []string{fallback}
	}
	languages := make([]string, 0, len(ts))
	for _, t := range ts {
		languages = append(languages, t.LanguageCode)
	}
	return languages
}

// UpdateProficiency sets the proficiency of a vocabulary word, clamped to
// 0..100.
func (s *Synchronizer) UpdateProficiency(ctx context.Context, compositeID string, proficiency int) error {
	id, err := domain.ParseCompositeID(compositeID)
	if err != nil {
		return err
	}

	uw, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.GetUserWord(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("get user word: %w", err)
	}
	if uw == nil {
		return fmt.Errorf("user word %s: %w", id, domain.ErrNotFound)
	}

	p := domain.ClampProficiency(proficiency)
	n, err := retryOnce(ctx, func() (int64, error) {
		return s.store.UpdateProficiency(ctx, id, p)
	})
	if err != nil {
		return fmt.Errorf("update proficiency: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update proficiency %s: %w", id, domain.ErrPolicyBlocked)
	}

	s.invalidateLists(uw.UserID)
	s.events.Publish(domain.VocabularyChanged{
		UserID:  uw.UserID,
		Action:  domain.ActionUpdated,
		WordIDs: []uuid.UUID{uw.WordID},
	})
	return nil
}
