package domain

import (
	"time"

	"github.com/google/uuid"
)

// Word is a global, deduplicated surface form shared by all users.
type Word struct {
	ID        uuid.UUID
	Text      string
	CreatedAt time.Time
}

// Translation holds the text of a word in one language.
// Example stores both example sentences, see EncodeExample.
type Translation struct {
	WordID       uuid.UUID
	LanguageCode string
	Text         string
	Example      string
	CreatedAt    time.Time
}

// UserWord links a user to a global word. There is exactly one row per
// (user, word) no matter how many languages the word is translated into.
type UserWord struct {
	ID          uuid.UUID
	UserID      int64
	WordID      uuid.UUID
	Proficiency int
	LearnedAt   time.Time
}

// WordInput is a word captured by the user, ready to be saved.
type WordInput struct {
	Original       string
	Translation    string
	Example        string
	ExampleEnglish string
}

// Example is a pair of example sentences for a word.
type Example struct {
	Translated string
	English    string
}

// VocabularyRecord is the denormalized view of one saved word in one language.
type VocabularyRecord struct {
	Original       string
	Translation    string
	Example        string
	ExampleEnglish string
	Language       string
}

// CacheEntry is a VocabularyRecord kept in the recovery cache.
type CacheEntry struct {
	Value     VocabularyRecord
	Timestamp time.Time
	TTL       time.Duration
}

// SavedWord is a vocabulary item as shown to the user
type SavedWord struct {
	ID             string
	Original       string
	Translation    string
	Example        string
	ExampleEnglish string
	Language       string
	Proficiency    int
	LearnedAt      time.Time
	Category       Category
}

// NewSavedWord builds a SavedWord for a user word and its record.
func NewSavedWord(uw UserWord, rec VocabularyRecord) SavedWord {
	return SavedWord{
		ID:             CompositeID(uw.ID, rec.Language),
		Original:       rec.Original,
		Translation:    rec.Translation,
		Example:        rec.Example,
		ExampleEnglish: rec.ExampleEnglish,
		Language:       rec.Language,
		Proficiency:    uw.Proficiency,
		LearnedAt:      uw.LearnedAt,
		Category:       Categorize(rec.Original),
	}
}

// ClampProficiency keeps proficiency inside 0..100.
func ClampProficiency(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
