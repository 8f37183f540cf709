package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vocam/internal/domain"
)

// GetUserVocabulary returns the user's vocabulary, optionally limited to one
// language. Results are cached per (user, language) until the list TTL runs
// out, a mutation invalidates them, or forceRefresh is set.
func (s *Synchronizer) GetUserVocabulary(ctx context.Context, userID int64, lang string, forceRefresh bool) ([]domain.SavedWord, error) {
	if lang != "" {
		lang = domain.NormalizeLanguage(lang)
	}
	key := listKey{UserID: userID, Language: lang}

	if !forceRefresh {
		if words, ok := s.lists.Get(key); ok {
			return cloneWords(words), nil
		}
	}

	userWords, err := retryOnce(ctx, func() ([]domain.UserWord, error) {
		return s.store.ListUserWords(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("list user words: %w", err)
	}

	result := make([]domain.SavedWord, 0, len(userWords))
	var pending []domain.UserWord
	for _, uw := range userWords {
		if rec, ok := s.cachedRecord(userID, uw.WordID, lang); ok {
			result = append(result, domain.NewSavedWord(uw, rec))
			continue
		}
		pending = append(pending, uw)
	}

	if len(pending) > 0 {
		resolved, err := s.resolveRemote(ctx, userID, lang, pending)
		if err != nil {
			return nil, err
		}
		result = append(result, resolved...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].LearnedAt.After(result[j].LearnedAt)
	})

	s.lists.Set(key, result, s.cfg.ListTTL)
	return cloneWords(result), nil
}

// cachedRecord returns the recovery record for the word if it matches lang.
func (s *Synchronizer) cachedRecord(userID int64, wordID uuid.UUID, lang string) (domain.VocabularyRecord, bool) {
	entry, ok := s.recovery.Get(userID, wordID)
	if !ok {
		return domain.VocabularyRecord{}, false
	}
	if lang != "" && entry.Value.Language != lang {
		return domain.VocabularyRecord{}, false
	}
	return entry.Value, true
}

// resolveRemote builds vocabulary rows from the store with one query for
// words and one for translations, whatever the number of rows.
func (s *Synchronizer) resolveRemote(ctx context.Context, userID int64, lang string, pending []domain.UserWord) ([]domain.SavedWord, error) {
	ids := make([]uuid.UUID, 0, len(pending))
	seen := make(map[uuid.UUID]struct{}, len(pending))
	for _, uw := range pending {
		if _, ok := seen[uw.WordID]; ok {
			continue
		}
		seen[uw.WordID] = struct{}{}
		ids = append(ids, uw.WordID)
	}

	var words []domain.Word
	var translations []domain.Translation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		words, err = retryOnce(gctx, func() ([]domain.Word, error) {
			return s.store.GetWordsByIDs(gctx, ids)
		})
		if err != nil {
			return fmt.Errorf("get words: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		translations, err = retryOnce(gctx, func() ([]domain.Translation, error) {
			return s.store.GetTranslationsByWordIDs(gctx, ids, lang)
		})
		if err != nil {
			return fmt.Errorf("get translations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	wordByID := make(map[uuid.UUID]domain.Word, len(words))
	for _, w := range words {
		wordByID[w.ID] = w
	}

	// One translation per word: the first the store returned.
	translationByWord := make(map[uuid.UUID]domain.Translation, len(translations))
	for _, t := range translations {
		if _, ok := translationByWord[t.WordID]; !ok {
			translationByWord[t.WordID] = t
		}
	}

	result := make([]domain.SavedWord, 0, len(pending))
	for _, uw := range pending {
		w, hasWord := wordByID[uw.WordID]
		t, hasTranslation := translationByWord[uw.WordID]
		if !hasWord || !hasTranslation {
			// Rows with a usable recovery entry were emitted before the
			// remote lookup, so nothing is left to recover from.
			s.logger.Warn("Dropping vocabulary row without visible word or translation",
				zap.Int64("user_id", userID),
				zap.String("user_word_id", uw.ID.String()),
				zap.String("word_id", uw.WordID.String()),
				zap.String("language", lang),
				zap.Bool("word_visible", hasWord),
				zap.Bool("translation_visible", hasTranslation),
			)
			continue
		}

		example := domain.DecodeExample(t.Example)
		result = append(result, domain.NewSavedWord(uw, domain.VocabularyRecord{
			Original:       w.Text,
			Translation:    t.Text,
			Example:        example.Translated,
			ExampleEnglish: example.English,
			Language:       t.LanguageCode,
		}))
	}

	return result, nil
}

func cloneWords(words []domain.SavedWord) []domain.SavedWord {
	out := make([]domain.SavedWord, len(words))
	copy(out, words)
	return out
}
