package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocam/internal/domain"
	"vocam/internal/testutil"
)

func TestDeleteWord_RemovesOnlyTheUsersLink(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	f.save(t, 2, "es", testutil.NewTestInput("car", "coche"))

	words := f.vocabulary(t, 1, "es")
	require.Len(t, words, 1)

	deleted, err := f.sync.DeleteWord(context.Background(), words[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Empty(t, f.vocabulary(t, 1, "es"))
	assert.Equal(t, []string{"car"}, originals(f.vocabulary(t, 2, "es")))
	assert.Equal(t, 1, f.store.WordCount(), "shared word is kept")
	assert.Equal(t, 1, f.store.TranslationCount(), "shared translation is kept")

	last := f.events[len(f.events)-1]
	assert.Equal(t, domain.ActionDeleted, last.Action)
	assert.Equal(t, int64(1), last.UserID)
	assert.Equal(t, -1, last.CountDelta)
	assert.Equal(t, []string{"es"}, last.Languages)
}

func TestDeleteWord_ClearsRecoveryEntry(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	words := f.vocabulary(t, 1, "es")
	require.Len(t, words, 1)

	_, err := f.sync.DeleteWord(context.Background(), words[0].ID)
	require.NoError(t, err)

	w, err := f.store.FindWordByText(context.Background(), "car")
	require.NoError(t, err)
	_, ok := f.recovery.Get(1, w.ID)
	assert.False(t, ok)

	// Saving again after a delete is a fresh save, not a recovered one.
	res := f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	assert.Equal(t, []string{"car"}, res.SavedWords)
}

func TestDeleteWord_AlreadyGone(t *testing.T) {
	f := newSyncFixture()

	deleted, err := f.sync.DeleteWord(context.Background(), domain.CompositeID(uuid.New(), "es"))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, f.events)
}

func TestDeleteWord_RemovedConcurrentlyStillInvalidatesCounts(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	agg := NewAggregator(f.sync, time.Hour)
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	words := f.vocabulary(t, 1, "es")
	require.Len(t, words, 1)

	counts, err := agg.GetUserVocabularyCounts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"es": 1}, counts)

	f.sync.store = &concurrentDelete{FakeStore: f.store}
	deleted, err := f.sync.DeleteWord(ctx, words[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	last := f.events[len(f.events)-1]
	assert.Equal(t, domain.ActionDeleted, last.Action)
	assert.Equal(t, 0, last.CountDelta)

	counts, err = agg.GetUserVocabularyCounts(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

// concurrentDelete removes the row but reports no rows affected, as when
// another writer deleted it first.
type concurrentDelete struct {
	*testutil.FakeStore
}

func (c *concurrentDelete) DeleteUserWord(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, err := c.FakeStore.DeleteUserWord(ctx, id); err != nil {
		return 0, err
	}
	return 0, nil
}

func TestDeleteWord_BlockedByPolicy(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	words := f.vocabulary(t, 1, "es")
	require.Len(t, words, 1)
	events := len(f.events)

	f.store.DropDeletes = true
	deleted, err := f.sync.DeleteWord(context.Background(), words[0].ID)

	assert.False(t, deleted)
	assert.True(t, errors.Is(err, domain.ErrPolicyBlocked))
	assert.Len(t, f.events, events)
	assert.Len(t, f.vocabulary(t, 1, "es"), 1)
}

func TestDeleteWord_InvalidID(t *testing.T) {
	f := newSyncFixture()

	deleted, err := f.sync.DeleteWord(context.Background(), "not-a-uuid_es")
	assert.False(t, deleted)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Equal(t, 0, f.store.Calls("GetUserWord"))
}

func TestDeleteWord_InvalidatesListCache(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))

	words, err := f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	require.Len(t, words, 1)

	_, err = f.sync.DeleteWord(ctx, words[0].ID)
	require.NoError(t, err)

	words, err = f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestUpdateProficiency(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	id := f.vocabulary(t, 1, "es")[0].ID

	require.NoError(t, f.sync.UpdateProficiency(ctx, id, 150))
	words, err := f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	assert.Equal(t, 100, words[0].Proficiency)

	last := f.events[len(f.events)-1]
	assert.Equal(t, domain.ActionUpdated, last.Action)

	require.NoError(t, f.sync.UpdateProficiency(ctx, id, -3))
	words, err = f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	assert.Equal(t, 0, words[0].Proficiency)
}

func TestUpdateProficiency_Failures(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	id := f.vocabulary(t, 1, "es")[0].ID

	err := f.sync.UpdateProficiency(ctx, domain.CompositeID(uuid.New(), "es"), 10)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	f.store.DropUpdates = true
	err = f.sync.UpdateProficiency(ctx, id, 10)
	assert.True(t, errors.Is(err, domain.ErrPolicyBlocked))

	err = f.sync.UpdateProficiency(ctx, "bad", 10)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
