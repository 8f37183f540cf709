package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocam/internal/domain"
)

var userWordRowColumns = []string{"id", "user_id", "word_id", "proficiency", "learned_at"}

func TestVocabularyRepo_FindUserWordInLanguage(t *testing.T) {
	id, wordID := uuid.New(), uuid.New()
	learned := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectQuery("FROM user_words uw JOIN words w .* JOIN translations t .* WHERE uw.user_id = \\$1 AND w.text = \\$2 AND t.language_code = \\$3").
			WithArgs(int64(7), "car", "es").
			WillReturnRows(sqlmock.NewRows(userWordRowColumns).AddRow(id.String(), int64(7), wordID.String(), 10, learned))

		uw, err := repo.FindUserWordInLanguage(context.Background(), 7, "car", "es")
		require.NoError(t, err)
		assert.Equal(t, id, uw.ID)
		assert.Equal(t, wordID, uw.WordID)
		assert.Equal(t, 10, uw.Proficiency)
		assert.Equal(t, learned, uw.LearnedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not visible", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectQuery("FROM user_words uw JOIN words w").
			WithArgs(int64(7), "car", "es").
			WillReturnError(sql.ErrNoRows)

		uw, err := repo.FindUserWordInLanguage(context.Background(), 7, "car", "es")
		assert.NoError(t, err)
		assert.Nil(t, uw)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVocabularyRepo_GetUserWord(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()
	id := uuid.New()

	mock.ExpectQuery("FROM user_words uw WHERE uw.id = \\$1").
		WithArgs(id).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetUserWord(context.Background(), id)
	assert.True(t, domain.IsTransient(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_CreateUserWord(t *testing.T) {
	uw := domain.UserWord{ID: uuid.New(), UserID: 7, WordID: uuid.New(), Proficiency: 0}

	t.Run("success", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectExec("INSERT INTO user_words").
			WithArgs(uw.ID, uw.UserID, uw.WordID, 0, repo.now()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := repo.CreateUserWord(context.Background(), uw)
		require.NoError(t, err)
		assert.Equal(t, uw.ID, created.ID)
		assert.Equal(t, repo.now(), created.LearnedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already linked", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectExec("INSERT INTO user_words").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.CreateUserWord(context.Background(), uw)
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVocabularyRepo_UpdateProficiency(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()
	id := uuid.New()

	mock.ExpectExec("UPDATE user_words SET proficiency = \\$2 WHERE id = \\$1").
		WithArgs(id, 55).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateProficiency(context.Background(), id, 55)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_DeleteUserWord(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
	}{
		{name: "deleted", affected: 1},
		{name: "filtered by policy", affected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, done := newVocabularyRepo(t)
			defer done()
			id := uuid.New()

			mock.ExpectExec("DELETE FROM user_words WHERE id = \\$1").
				WithArgs(id).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			n, err := repo.DeleteUserWord(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.affected, n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabularyRepo_ListUserWords(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()
	newer := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	mock.ExpectQuery("FROM user_words uw WHERE uw.user_id = \\$1 ORDER BY uw.learned_at DESC").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(userWordRowColumns).
			AddRow(uuid.NewString(), int64(7), uuid.NewString(), 0, newer).
			AddRow(uuid.NewString(), int64(7), uuid.NewString(), 30, older))

	words, err := repo.ListUserWords(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, newer, words[0].LearnedAt)
	assert.Equal(t, 30, words[1].Proficiency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_CountUserWords(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM user_words WHERE user_id = \\$1").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountUserWords(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
