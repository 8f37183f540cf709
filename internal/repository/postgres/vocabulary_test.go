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

func newVocabularyRepo(t *testing.T) (*VocabularyRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewVocabularyRepo(db)
	repo.now = func() time.Time { return time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC) }
	return repo, mock, func() { db.Close() }
}

func TestVocabularyRepo_FindWordByText(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mockRows    *sqlmock.Rows
		mockError   error
		expectedNil bool
		expectedErr bool
	}{
		{
			name:     "found",
			mockRows: sqlmock.NewRows([]string{"id", "text", "created_at"}).AddRow(id.String(), "car", created),
		},
		{
			name:        "not visible",
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:        "database error",
			mockError:   errors.New("timeout"),
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, done := newVocabularyRepo(t)
			defer done()

			query := "SELECT id, text, created_at FROM words WHERE text = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs("car").WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs("car").WillReturnRows(tt.mockRows)
			}

			w, err := repo.FindWordByText(context.Background(), "car")

			switch {
			case tt.expectedErr:
				assert.Error(t, err)
				assert.True(t, domain.IsTransient(err))
			case tt.expectedNil:
				assert.NoError(t, err)
				assert.Nil(t, w)
			default:
				require.NoError(t, err)
				assert.Equal(t, id, w.ID)
				assert.Equal(t, "car", w.Text)
				assert.Equal(t, created, w.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestVocabularyRepo_CreateWord(t *testing.T) {
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectExec("INSERT INTO words").
			WithArgs(id, "car", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		w, err := repo.CreateWord(context.Background(), id, "car")
		require.NoError(t, err)
		assert.Equal(t, id, w.ID)
		assert.Equal(t, "car", w.Text)
		assert.Equal(t, repo.now(), w.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectExec("INSERT INTO words").
			WithArgs(id, "car", sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.CreateWord(context.Background(), id, "car")
		assert.True(t, errors.Is(err, domain.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered by policy", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectExec("INSERT INTO words").
			WithArgs(id, "car", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.CreateWord(context.Background(), id, "car")
		assert.True(t, errors.Is(err, domain.ErrPolicyBlocked))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVocabularyRepo_DeleteWord(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()
	id := uuid.New()

	mock.ExpectExec("DELETE FROM words WHERE id = \\$1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteWord(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_GetWordsByIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	t.Run("one query for all ids", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectQuery("SELECT id, text, created_at FROM words WHERE id IN \\(\\$1,\\$2\\)").
			WithArgs(a, b).
			WillReturnRows(sqlmock.NewRows([]string{"id", "text", "created_at"}).
				AddRow(a.String(), "car", created).
				AddRow(b.String(), "tree", created))

		words, err := repo.GetWordsByIDs(context.Background(), []uuid.UUID{a, b})
		require.NoError(t, err)
		require.Len(t, words, 2)
		assert.Equal(t, "car", words[0].Text)
		assert.Equal(t, b, words[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		words, err := repo.GetWordsByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVocabularyRepo_UpsertTranslation(t *testing.T) {
	repo, mock, done := newVocabularyRepo(t)
	defer done()
	wordID := uuid.New()

	mock.ExpectExec("INSERT INTO translations .* ON CONFLICT \\(word_id, language_code\\) DO UPDATE").
		WithArgs(wordID, "es", "coche", "El coche. ||| The car.").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertTranslation(context.Background(), domain.Translation{
		WordID:       wordID,
		LanguageCode: "es",
		Text:         "coche",
		Example:      "El coche. ||| The car.",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVocabularyRepo_GetTranslationsByWordIDs(t *testing.T) {
	a := uuid.New()
	created := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	columns := []string{"word_id", "language_code", "translated_text", "example", "created_at"}

	t.Run("one language", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectQuery("FROM translations WHERE word_id IN \\(\\$1\\) AND language_code = \\$2 ORDER BY created_at ASC, language_code ASC").
			WithArgs(a, "es").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(a.String(), "es", "coche", "El coche. ||| The car.", created))

		ts, err := repo.GetTranslationsByWordIDs(context.Background(), []uuid.UUID{a}, "es")
		require.NoError(t, err)
		require.Len(t, ts, 1)
		assert.Equal(t, "coche", ts[0].Text)
		assert.Equal(t, "El coche. ||| The car.", ts[0].Example)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all languages with null example", func(t *testing.T) {
		repo, mock, done := newVocabularyRepo(t)
		defer done()

		mock.ExpectQuery("FROM translations WHERE word_id IN \\(\\$1\\) ORDER BY").
			WithArgs(a).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(a.String(), "es", "coche", nil, created).
				AddRow(a.String(), "fr", "voiture", nil, created))

		ts, err := repo.GetTranslationsByWordIDs(context.Background(), []uuid.UUID{a}, "")
		require.NoError(t, err)
		require.Len(t, ts, 2)
		assert.Equal(t, "", ts[0].Example)
		assert.Equal(t, "fr", ts[1].LanguageCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
