package domain

import "github.com/google/uuid"

// VocabularyAction describes what happened to a user's vocabulary.
type VocabularyAction string

const (
	ActionAdded   VocabularyAction = "added"
	ActionUpdated VocabularyAction = "updated"
	ActionDeleted VocabularyAction = "deleted"
)

// VocabularyChanged is published after a successful mutation so listeners
// can update without a full reload.
type VocabularyChanged struct {
	UserID     int64
	Action     VocabularyAction
	WordIDs    []uuid.UUID
	Languages  []string
	CountDelta int
}
