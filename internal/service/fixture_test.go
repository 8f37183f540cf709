package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vocam/internal/cache"
	"vocam/internal/domain"
	"vocam/internal/testutil"
)

type syncFixture struct {
	store    *testutil.FakeStore
	recovery *cache.Recovery
	sync     *Synchronizer
	events   []domain.VocabularyChanged
}

func newSyncFixture() *syncFixture {
	store := testutil.NewFakeStore()
	return newSyncFixtureWithStore(store)
}

// newSyncFixtureWithStore builds a synchronizer with an empty recovery cache
// over an existing store, as after a process restart.
func newSyncFixtureWithStore(store *testutil.FakeStore) *syncFixture {
	f := &syncFixture{store: store, recovery: cache.NewRecovery()}
	f.sync = NewSynchronizer(store, f.recovery, nil, NewEventBus(), testutil.NewTestLogger(), DefaultSyncConfig())
	f.sync.Events().Subscribe(func(e domain.VocabularyChanged) {
		f.events = append(f.events, e)
	})
	return f
}

func (f *syncFixture) save(t *testing.T, userID int64, lang string, words ...domain.WordInput) *domain.BatchResult {
	t.Helper()
	res, err := f.sync.SaveMultipleWords(context.Background(), userID, lang, words)
	require.NoError(t, err)
	return res
}

func (f *syncFixture) vocabulary(t *testing.T, userID int64, lang string) []domain.SavedWord {
	t.Helper()
	words, err := f.sync.GetUserVocabulary(context.Background(), userID, lang, true)
	require.NoError(t, err)
	return words
}

func originals(words []domain.SavedWord) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Original)
	}
	return out
}
