package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"vocam/internal/domain"
	"vocam/internal/repository"
)

type translationKey struct {
	wordID uuid.UUID
	lang   string
}

type injectedError struct {
	err   error
	times int
}

// FakeStore is an in-memory VocabularyStore with the same uniqueness rules as
// the database. Its knobs imitate a backend whose row-level policy silently
// filters reads and writes.
type FakeStore struct {
	mu sync.Mutex

	words        map[uuid.UUID]domain.Word
	translations map[translationKey]domain.Translation
	userWords    map[uuid.UUID]domain.UserWord

	// HideTranslations makes every translation invisible to reads.
	HideTranslations bool
	// DropUserWordWrites makes CreateUserWord report success without storing.
	DropUserWordWrites bool
	// DropDeletes makes DeleteUserWord affect no rows.
	DropDeletes bool
	// DropUpdates makes UpdateProficiency affect no rows.
	DropUpdates bool
	// CountHook rewrites the result of CountUserWords.
	CountHook func(userID int64, n int) (int, error)

	failures map[string]*injectedError
	calls    map[string]int
	tick     int
}

var _ repository.VocabularyStore = (*FakeStore)(nil)

// NewFakeStore creates an empty fake store
func NewFakeStore() *FakeStore {
	return &FakeStore{
		words:        make(map[uuid.UUID]domain.Word),
		translations: make(map[translationKey]domain.Translation),
		userWords:    make(map[uuid.UUID]domain.UserWord),
		failures:     make(map[string]*injectedError),
		calls:        make(map[string]int),
	}
}

// FailNext makes the next times calls of method return err.
func (f *FakeStore) FailNext(method string, err error, times int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method] = &injectedError{err: err, times: times}
}

// Calls returns how many times method was called
func (f *FakeStore) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// WordCount returns the number of global words
func (f *FakeStore) WordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.words)
}

// UserWordCount returns the number of stored user words of every user
func (f *FakeStore) UserWordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.userWords)
}

// TranslationCount returns the number of stored translations
func (f *FakeStore) TranslationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.translations)
}

// enter records the call and returns an injected error if one is pending.
// The caller must hold f.mu.
func (f *FakeStore) enter(method string) error {
	f.calls[method]++
	inj, ok := f.failures[method]
	if !ok {
		return nil
	}
	inj.times--
	if inj.times <= 0 {
		delete(f.failures, method)
	}
	return inj.err
}

// now returns strictly increasing timestamps
func (f *FakeStore) now() time.Time {
	f.tick++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.tick) * time.Second)
}

func (f *FakeStore) findWord(text string) *domain.Word {
	for _, w := range f.words {
		if w.Text == text {
			w := w
			return &w
		}
	}
	return nil
}

func (f *FakeStore) findUserWord(userID int64, wordID uuid.UUID) *domain.UserWord {
	for _, uw := range f.userWords {
		if uw.UserID == userID && uw.WordID == wordID {
			uw := uw
			return &uw
		}
	}
	return nil
}

func (f *FakeStore) FindWordByText(ctx context.Context, text string) (*domain.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindWordByText"); err != nil {
		return nil, err
	}
	return f.findWord(text), nil
}

func (f *FakeStore) CreateWord(ctx context.Context, id uuid.UUID, text string) (*domain.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateWord"); err != nil {
		return nil, err
	}
	if f.findWord(text) != nil {
		return nil, domain.ErrConflict
	}
	w := domain.Word{ID: id, Text: text, CreatedAt: f.now()}
	f.words[id] = w
	return &w, nil
}

func (f *FakeStore) DeleteWord(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteWord"); err != nil {
		return err
	}
	for _, uw := range f.userWords {
		if uw.WordID == id {
			return domain.ErrNotFound
		}
	}
	delete(f.words, id)
	for k := range f.translations {
		if k.wordID == id {
			delete(f.translations, k)
		}
	}
	return nil
}

func (f *FakeStore) GetWordsByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetWordsByIDs"); err != nil {
		return nil, err
	}
	out := []domain.Word{}
	for _, id := range ids {
		if w, ok := f.words[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *FakeStore) UpsertTranslation(ctx context.Context, t domain.Translation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpsertTranslation"); err != nil {
		return err
	}
	if _, ok := f.words[t.WordID]; !ok {
		return domain.ErrNotFound
	}
	key := translationKey{wordID: t.WordID, lang: t.LanguageCode}
	if old, ok := f.translations[key]; ok {
		t.CreatedAt = old.CreatedAt
	} else {
		t.CreatedAt = f.now()
	}
	f.translations[key] = t
	return nil
}

func (f *FakeStore) GetTranslationsByWordIDs(ctx context.Context, wordIDs []uuid.UUID, lang string) ([]domain.Translation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetTranslationsByWordIDs"); err != nil {
		return nil, err
	}
	out := []domain.Translation{}
	if f.HideTranslations {
		return out, nil
	}
	wanted := make(map[uuid.UUID]bool, len(wordIDs))
	for _, id := range wordIDs {
		wanted[id] = true
	}
	for k, t := range f.translations {
		if wanted[k.wordID] && (lang == "" || k.lang == lang) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].LanguageCode < out[j].LanguageCode
	})
	return out, nil
}

func (f *FakeStore) FindUserWord(ctx context.Context, userID int64, wordID uuid.UUID) (*domain.UserWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindUserWord"); err != nil {
		return nil, err
	}
	return f.findUserWord(userID, wordID), nil
}

func (f *FakeStore) FindUserWordInLanguage(ctx context.Context, userID int64, text, lang string) (*domain.UserWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("FindUserWordInLanguage"); err != nil {
		return nil, err
	}
	if f.HideTranslations {
		return nil, nil
	}
	w := f.findWord(text)
	if w == nil {
		return nil, nil
	}
	if _, ok := f.translations[translationKey{wordID: w.ID, lang: lang}]; !ok {
		return nil, nil
	}
	return f.findUserWord(userID, w.ID), nil
}

func (f *FakeStore) GetUserWord(ctx context.Context, id uuid.UUID) (*domain.UserWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("GetUserWord"); err != nil {
		return nil, err
	}
	uw, ok := f.userWords[id]
	if !ok {
		return nil, nil
	}
	return &uw, nil
}

func (f *FakeStore) CreateUserWord(ctx context.Context, uw domain.UserWord) (*domain.UserWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CreateUserWord"); err != nil {
		return nil, err
	}
	if _, ok := f.words[uw.WordID]; !ok {
		return nil, domain.ErrNotFound
	}
	if f.findUserWord(uw.UserID, uw.WordID) != nil {
		return nil, domain.ErrConflict
	}
	uw.LearnedAt = f.now()
	if !f.DropUserWordWrites {
		f.userWords[uw.ID] = uw
	}
	return &uw, nil
}

func (f *FakeStore) UpdateProficiency(ctx context.Context, id uuid.UUID, proficiency int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("UpdateProficiency"); err != nil {
		return 0, err
	}
	uw, ok := f.userWords[id]
	if !ok || f.DropUpdates {
		return 0, nil
	}
	uw.Proficiency = proficiency
	f.userWords[id] = uw
	return 1, nil
}

func (f *FakeStore) DeleteUserWord(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("DeleteUserWord"); err != nil {
		return 0, err
	}
	if _, ok := f.userWords[id]; !ok || f.DropDeletes {
		return 0, nil
	}
	delete(f.userWords, id)
	return 1, nil
}

func (f *FakeStore) ListUserWords(ctx context.Context, userID int64) ([]domain.UserWord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListUserWords"); err != nil {
		return nil, err
	}
	out := []domain.UserWord{}
	for _, uw := range f.userWords {
		if uw.UserID == userID {
			out = append(out, uw)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LearnedAt.After(out[j].LearnedAt) })
	return out, nil
}

func (f *FakeStore) CountUserWords(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CountUserWords"); err != nil {
		return 0, err
	}
	n := 0
	for _, uw := range f.userWords {
		if uw.UserID == userID {
			n++
		}
	}
	if f.CountHook != nil {
		return f.CountHook(userID, n)
	}
	return n, nil
}

func (f *FakeStore) CountByLanguage(ctx context.Context, userID int64) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("CountByLanguage"); err != nil {
		return nil, err
	}
	counts := map[string]int{}
	if f.HideTranslations {
		return counts, nil
	}
	for _, uw := range f.userWords {
		if uw.UserID != userID {
			continue
		}
		for k := range f.translations {
			if k.wordID == uw.WordID {
				counts[k.lang]++
			}
		}
	}
	return counts, nil
}

func (f *FakeStore) ListUserWordTexts(ctx context.Context, userID int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("ListUserWordTexts"); err != nil {
		return nil, err
	}
	out := []string{}
	for _, uw := range f.userWords {
		if uw.UserID != userID {
			continue
		}
		if w, ok := f.words[uw.WordID]; ok {
			out = append(out, w.Text)
		}
	}
	sort.Strings(out)
	return out, nil
}
