package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vocam/internal/cache"
	"vocam/internal/domain"
	"vocam/internal/repository"
)

// Aggregator derives vocabulary counts without loading full vocabularies.
// Its caches are separate from the synchronizer's list cache and are
// invalidated by vocabulary change events.
type Aggregator struct {
	store  repository.VocabularyStore
	logger *zap.Logger
	ttl    time.Duration

	counts *cache.TTL[int64, map[string]int]
	unique *cache.TTL[int64, int]

	unsubscribe func()
}

// NewAggregator creates an aggregator over the synchronizer's store.
func NewAggregator(sync *Synchronizer, ttl time.Duration) *Aggregator {
	a := &Aggregator{
		store:  sync.store,
		logger: sync.logger,
		ttl:    ttl,
		counts: cache.NewTTL[int64, map[string]int](),
		unique: cache.NewTTL[int64, int](),
	}
	a.unsubscribe = sync.Events().Subscribe(func(e domain.VocabularyChanged) {
		a.Invalidate(e.UserID)
	})
	return a
}

// Close stops listening for vocabulary changes
func (a *Aggregator) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Invalidate drops the cached counts of the user
func (a *Aggregator) Invalidate(userID int64) {
	a.counts.Delete(userID)
	a.unique.Delete(userID)
}

// GetUserVocabularyCounts returns language code -> number of the user's words
// translated into that language.
func (a *Aggregator) GetUserVocabularyCounts(ctx context.Context, userID int64) (map[string]int, error) {
	if counts, ok := a.counts.Get(userID); ok {
		return cloneCounts(counts), nil
	}

	counts, err := retryOnce(ctx, func() (map[string]int, error) {
		return a.store.CountByLanguage(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("count by language: %w", err)
	}

	a.counts.Set(userID, counts, a.ttl)
	return cloneCounts(counts), nil
}

// GetUniqueWordsCount returns the number of distinct base words the user has,
// whatever the number of languages.
func (a *Aggregator) GetUniqueWordsCount(ctx context.Context, userID int64) (int, error) {
	if n, ok := a.unique.Get(userID); ok {
		return n, nil
	}

	texts, err := retryOnce(ctx, func() ([]string, error) {
		return a.store.ListUserWordTexts(ctx, userID)
	})
	if err != nil {
		return 0, fmt.Errorf("list user word texts: %w", err)
	}

	distinct := make(map[string]struct{}, len(texts))
	for _, text := range texts {
		distinct[domain.BaseWord(domain.NormalizeText(text))] = struct{}{}
	}

	a.unique.Set(userID, len(distinct), a.ttl)
	return len(distinct), nil
}

// GetTotalVocabularyCount sums the per-language counts.
func (a *Aggregator) GetTotalVocabularyCount(ctx context.Context, userID int64) (int, error) {
	counts, err := a.GetUserVocabularyCounts(ctx, userID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

func cloneCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
