package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocam/internal/domain"
	"vocam/internal/testutil"
)

func TestGetUserVocabulary_NewestFirst(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("apple", "manzana"))
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"), testutil.NewTestInput("tree", "árbol"))

	words := f.vocabulary(t, 1, "es")
	assert.Equal(t, []string{"tree", "car", "apple"}, originals(words))
	for i := 1; i < len(words); i++ {
		assert.False(t, words[i].LearnedAt.After(words[i-1].LearnedAt))
	}
}

func TestGetUserVocabulary_RemoteRowsUseBatchedQueries(t *testing.T) {
	store := testutil.NewFakeStore()
	writer := newSyncFixtureWithStore(store)
	writer.save(t, 1, "es",
		testutil.NewTestInput("apple", "manzana"),
		testutil.NewTestInput("car", "coche"),
		testutil.NewTestInput("tree", "árbol"),
	)

	reader := newSyncFixtureWithStore(store)
	wordsBefore := store.Calls("GetWordsByIDs")
	translationsBefore := store.Calls("GetTranslationsByWordIDs")

	words := reader.vocabulary(t, 1, "es")

	require.Len(t, words, 3)
	assert.Equal(t, 1, store.Calls("GetWordsByIDs")-wordsBefore)
	assert.Equal(t, 1, store.Calls("GetTranslationsByWordIDs")-translationsBefore)

	byOriginal := map[string]domain.SavedWord{}
	for _, w := range words {
		byOriginal[w.Original] = w
	}
	car := byOriginal["car"]
	assert.Equal(t, "coche", car.Translation)
	assert.Equal(t, "Ex: coche", car.Example)
	assert.Equal(t, "Ex: car", car.ExampleEnglish)
	assert.Equal(t, "es", car.Language)
	assert.Equal(t, domain.CategoryTransportation, car.Category)
	assert.Equal(t, "es", domain.CompositeLanguage(car.ID))
}

func TestGetUserVocabulary_FiltersByLanguage(t *testing.T) {
	store := testutil.NewFakeStore()
	writer := newSyncFixtureWithStore(store)
	writer.save(t, 1, "es", testutil.NewTestInput("car", "coche"), testutil.NewTestInput("apple", "manzana"))
	writer.save(t, 1, "fr", testutil.NewTestInput("car", "voiture"))

	t.Run("from recovery cache", func(t *testing.T) {
		words := writer.vocabulary(t, 1, "fr")
		require.Len(t, words, 1)
		assert.Equal(t, "voiture", words[0].Translation)
	})

	t.Run("from store", func(t *testing.T) {
		reader := newSyncFixtureWithStore(store)
		fr := reader.vocabulary(t, 1, "fr")
		require.Len(t, fr, 1)
		assert.Equal(t, "voiture", fr[0].Translation)

		es := reader.vocabulary(t, 1, "es")
		assert.ElementsMatch(t, []string{"car", "apple"}, originals(es))
	})

	t.Run("all languages", func(t *testing.T) {
		reader := newSyncFixtureWithStore(store)
		all := reader.vocabulary(t, 1, "")
		assert.ElementsMatch(t, []string{"car", "apple"}, originals(all))
	})
}

func TestGetUserVocabulary_DropsRowsWithoutTranslation(t *testing.T) {
	store := testutil.NewFakeStore()
	writer := newSyncFixtureWithStore(store)
	writer.save(t, 1, "es", testutil.NewTestInput("car", "coche"))

	store.HideTranslations = true
	reader := newSyncFixtureWithStore(store)

	assert.Empty(t, reader.vocabulary(t, 1, "es"))
	assert.Len(t, writer.vocabulary(t, 1, "es"), 1, "the writer still has the row in its recovery cache")
}

func TestGetUserVocabulary_Caching(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	ctx := context.Background()

	_, err := f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	listed := f.store.Calls("ListUserWords")

	words, err := f.sync.GetUserVocabulary(ctx, 1, "ES", false)
	require.NoError(t, err)
	assert.Len(t, words, 1)
	assert.Equal(t, listed, f.store.Calls("ListUserWords"), "second read is served from cache")

	words[0].Translation = "mutated"
	again, err := f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	assert.Equal(t, "coche", again[0].Translation, "callers get a copy")

	_, err = f.sync.GetUserVocabulary(ctx, 1, "es", true)
	require.NoError(t, err)
	assert.Equal(t, listed+1, f.store.Calls("ListUserWords"))
}

func TestGetUserVocabulary_SaveInvalidatesCache(t *testing.T) {
	f := newSyncFixture()
	ctx := context.Background()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))

	words, err := f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	require.Len(t, words, 1)

	f.save(t, 1, "es", testutil.NewTestInput("tree", "árbol"))

	words, err = f.sync.GetUserVocabulary(ctx, 1, "es", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"tree", "car"}, originals(words))
}

func TestGetUserVocabulary_Errors(t *testing.T) {
	f := newSyncFixture()
	f.save(t, 1, "es", testutil.NewTestInput("car", "coche"))
	reader := newSyncFixtureWithStore(f.store)
	ctx := context.Background()

	f.store.FailNext("ListUserWords", errors.New("boom"), 1)
	_, err := reader.sync.GetUserVocabulary(ctx, 1, "es", true)
	assert.Error(t, err)

	f.store.FailNext("GetTranslationsByWordIDs", errors.New("boom"), 1)
	_, err = reader.sync.GetUserVocabulary(ctx, 1, "es", true)
	assert.Error(t, err)

	words, err := reader.sync.GetUserVocabulary(ctx, 1, "es", true)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestGetUserVocabulary_Empty(t *testing.T) {
	f := newSyncFixture()

	words := f.vocabulary(t, 1, "es")
	assert.NotNil(t, words)
	assert.Empty(t, words)
	assert.Equal(t, 0, f.store.Calls("GetWordsByIDs"))
}
