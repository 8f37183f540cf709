package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocam/internal/cache"
	"vocam/internal/domain"
	"vocam/internal/repository"
)

// SyncConfig holds synchronizer tunables
type SyncConfig struct {
	InitialProficiency int
	RecoveryTTL        time.Duration
	ListTTL            time.Duration
}

// DefaultSyncConfig returns the values used when nothing is configured
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		InitialProficiency: 0,
		RecoveryTTL:        24 * time.Hour,
		ListTTL:            5 * time.Minute,
	}
}

type listKey struct {
	UserID   int64
	Language string
}

// Synchronizer reconciles a user's vocabulary between the remote store and
// the local recovery cache. It saves, reads, updates and deletes vocabulary
// while keeping one user word per (user, word) and one translation per
// (word, language).
type Synchronizer struct {
	store    repository.VocabularyStore
	recovery cache.RecoveryCache
	progress ProgressRecorder
	events   *EventBus
	logger   *zap.Logger
	cfg      SyncConfig

	lists *cache.TTL[listKey, []domain.SavedWord]
	newID func() uuid.UUID
}

// NewSynchronizer creates a new synchronizer. progress may be nil.
func NewSynchronizer(
	store repository.VocabularyStore,
	recovery cache.RecoveryCache,
	progress ProgressRecorder,
	events *EventBus,
	logger *zap.Logger,
	cfg SyncConfig,
) *Synchronizer {
	if events == nil {
		events = NewEventBus()
	}
	return &Synchronizer{
		store:    store,
		recovery: recovery,
		progress: progress,
		events:   events,
		logger:   logger,
		cfg:      cfg,
		lists:    cache.NewTTL[listKey, []domain.SavedWord](),
		newID:    uuid.New,
	}
}

// Events returns the bus vocabulary changes are published on
func (s *Synchronizer) Events() *EventBus {
	return s.events
}

// invalidateLists drops every cached vocabulary list of the user.
func (s *Synchronizer) invalidateLists(userID int64) {
	s.lists.DeleteFunc(func(k listKey) bool { return k.UserID == userID })
}

// HasWord reports whether the user already has original translated into
// lang.
func (s *Synchronizer) HasWord(ctx context.Context, userID int64, original, lang string) (bool, error) {
	uw, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.FindUserWordInLanguage(ctx, userID, domain.NormalizeText(original), domain.NormalizeLanguage(lang))
	})
	if err != nil {
		return false, err
	}
	return uw != nil, nil
}
