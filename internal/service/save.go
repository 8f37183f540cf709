package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vocam/internal/cache"
	"vocam/internal/domain"
)

// saveState tracks a word through the save pipeline:
// pending -> written -> verified, or written -> rejected when the
// verification read does not see the row.
type saveState int

const (
	statePending saveState = iota
	stateWritten
	stateVerified
	stateRejected
)

type wordSave struct {
	input domain.WordInput
	text  string
	state saveState

	word        *domain.Word
	wordCreated bool

	userWord        *domain.UserWord
	userWordCreated bool

	outcome domain.Outcome
}

func (w *wordSave) fail(err error) *wordSave {
	if w.state == stateWritten {
		w.state = stateRejected
	}
	w.outcome = domain.Failed(w.input.Original, err)
	return w
}

func (w *wordSave) exists() *wordSave {
	w.outcome = domain.AlreadyExists(w.input.Original)
	return w
}

// SaveWord saves a single word and reports success, exists or error.
func (s *Synchronizer) SaveWord(ctx context.Context, userID int64, lang string, word domain.WordInput) (domain.SaveStatus, error) {
	res, err := s.SaveMultipleWords(ctx, userID, lang, []domain.WordInput{word})
	if err != nil {
		return domain.SaveError, err
	}
	return res.Status(), nil
}

// SaveMultipleWords saves a batch of captured words for the user in lang.
// Duplicate originals are collapsed case-insensitively. Words are processed
// one after another so each word observes the writes of the previous one.
// A failure of one word never aborts the others.
func (s *Synchronizer) SaveMultipleWords(ctx context.Context, userID int64, lang string, words []domain.WordInput) (*domain.BatchResult, error) {
	lang = domain.NormalizeLanguage(lang)
	if !domain.IsSupportedLanguage(lang) {
		return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrValidation, lang)
	}

	inputs := dedupeInputs(words)
	outcomes := make([]domain.Outcome, 0, len(inputs))

	before, err := retryOnce(ctx, func() (int, error) {
		return s.store.CountUserWords(ctx, userID)
	})
	if err != nil {
		s.logger.Error("Failed to count user words before batch",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		for _, in := range inputs {
			outcomes = append(outcomes, domain.Failed(in.Original, err))
		}
		return domain.NewBatchResult(lang, outcomes), nil
	}

	var saved []*wordSave
	createdRows := 0
	for _, in := range inputs {
		ws := s.saveOne(ctx, userID, lang, in)
		outcomes = append(outcomes, ws.outcome)
		if ws.outcome.Kind != domain.OutcomeSaved {
			continue
		}
		saved = append(saved, ws)
		if ws.userWordCreated {
			createdRows++
		}
	}

	if createdRows > 0 && !s.countIncreased(ctx, userID, before, createdRows) {
		keys := make([]cache.Key, 0, len(saved))
		for _, ws := range saved {
			keys = append(keys, cache.Key{UserID: userID, WordID: ws.word.ID})
		}
		s.recovery.InvalidateKeys(keys)
		for i := range outcomes {
			if outcomes[i].Kind == domain.OutcomeSaved {
				outcomes[i] = domain.Failed(outcomes[i].Original, domain.ErrPolicyBlocked)
			}
		}
		saved = nil
		createdRows = 0
	}

	res := domain.NewBatchResult(lang, outcomes)

	if len(saved) > 0 {
		s.invalidateLists(userID)
		wordIDs := make([]uuid.UUID, 0, len(saved))
		for _, ws := range saved {
			wordIDs = append(wordIDs, ws.word.ID)
		}
		s.events.Publish(domain.VocabularyChanged{
			UserID:     userID,
			Action:     domain.ActionAdded,
			WordIDs:    wordIDs,
			Languages:  []string{lang},
			CountDelta: createdRows,
		})
	}

	s.logger.Info("Vocabulary batch saved",
		zap.Int64("user_id", userID),
		zap.String("language", lang),
		zap.Int("saved", len(res.SavedWords)),
		zap.Int("existing", len(res.ExistingWords)),
		zap.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// countIncreased compares the user's row count with the count before the
// batch. The batch is trusted only if at least expected new rows are visible.
// If the count cannot be read the per-word verification stands.
func (s *Synchronizer) countIncreased(ctx context.Context, userID int64, before, expected int) bool {
	after, err := retryOnce(ctx, func() (int, error) {
		return s.store.CountUserWords(ctx, userID)
	})
	if err != nil {
		s.logger.Warn("Failed to count user words after batch",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return true
	}
	if after-before < expected {
		s.logger.Warn("User word count did not grow as expected, writes were dropped",
			zap.Int64("user_id", userID),
			zap.Int("before", before),
			zap.Int("after", after),
			zap.Int("expected", expected),
		)
		return false
	}
	return true
}

// saveOne runs the pipeline for a single word.
func (s *Synchronizer) saveOne(ctx context.Context, userID int64, lang string, in domain.WordInput) *wordSave {
	ws := &wordSave{input: in, text: domain.NormalizeText(in.Original)}

	existing, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.FindUserWordInLanguage(ctx, userID, ws.text, lang)
	})
	if err != nil {
		return s.logFailure(userID, ws.fail(err))
	}
	if existing != nil {
		return ws.exists()
	}

	ws.word, ws.wordCreated, err = s.resolveWord(ctx, ws.text)
	if err != nil {
		return s.logFailure(userID, ws.fail(err))
	}

	uw, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.FindUserWord(ctx, userID, ws.word.ID)
	})
	if err != nil {
		s.rollbackWord(ctx, ws)
		return s.logFailure(userID, ws.fail(err))
	}

	if uw != nil {
		// The translation may be hidden from the join above; the recovery
		// cache still knows this user saved the word in lang.
		if entry, ok := s.recovery.Get(userID, ws.word.ID); ok && entry.Value.Language == lang {
			return ws.exists()
		}
		ws.userWord = uw
	} else if err := s.createUserWord(ctx, userID, ws); err != nil {
		return s.logFailure(userID, ws.fail(err))
	}

	err = retryOnceErr(ctx, func() error {
		return s.store.UpsertTranslation(ctx, domain.Translation{
			WordID:       ws.word.ID,
			LanguageCode: lang,
			Text:         in.Translation,
			Example:      domain.EncodeExample(in.Example, in.ExampleEnglish),
		})
	})
	if err != nil {
		s.undoUserWord(ctx, ws)
		s.rollbackWord(ctx, ws)
		return s.logFailure(userID, ws.fail(err))
	}

	ws.state = stateVerified
	s.recovery.Put(userID, ws.word.ID, domain.VocabularyRecord{
		Original:       in.Original,
		Translation:    in.Translation,
		Example:        in.Example,
		ExampleEnglish: in.ExampleEnglish,
		Language:       lang,
	}, s.cfg.RecoveryTTL)

	s.recordProgress(ctx, userID, ws.word.ID)

	ws.outcome = domain.Saved(in.Original)
	return ws
}

// resolveWord finds the global word for text or creates it. A unique
// violation means another writer created it first; the existing row is
// adopted.
func (s *Synchronizer) resolveWord(ctx context.Context, text string) (*domain.Word, bool, error) {
	w, err := retryOnce(ctx, func() (*domain.Word, error) {
		return s.store.FindWordByText(ctx, text)
	})
	if err != nil {
		return nil, false, err
	}
	if w != nil {
		return w, false, nil
	}

	id := s.newID()
	w, err = retryOnce(ctx, func() (*domain.Word, error) {
		return s.store.CreateWord(ctx, id, text)
	})
	if err == nil {
		return w, true, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return nil, false, err
	}

	w, err = retryOnce(ctx, func() (*domain.Word, error) {
		return s.store.FindWordByText(ctx, text)
	})
	if err != nil {
		return nil, false, err
	}
	if w == nil {
		return nil, false, fmt.Errorf("word %q exists but is not visible: %w", text, domain.ErrPolicyBlocked)
	}
	return w, false, nil
}

// createUserWord inserts the user word and confirms it with a read by
// primary key. An empty read means the backend dropped the write.
func (s *Synchronizer) createUserWord(ctx context.Context, userID int64, ws *wordSave) error {
	candidate := domain.UserWord{
		ID:          s.newID(),
		UserID:      userID,
		WordID:      ws.word.ID,
		Proficiency: domain.ClampProficiency(s.cfg.InitialProficiency),
	}

	_, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.CreateUserWord(ctx, candidate)
	})
	if errors.Is(err, domain.ErrConflict) {
		// A concurrent save linked the word first.
		uw, ferr := retryOnce(ctx, func() (*domain.UserWord, error) {
			return s.store.FindUserWord(ctx, userID, ws.word.ID)
		})
		if ferr != nil {
			return ferr
		}
		if uw == nil {
			return fmt.Errorf("user word for %q conflicts but is not visible: %w", ws.text, domain.ErrPolicyBlocked)
		}
		ws.userWord = uw
		return nil
	}
	if err != nil {
		s.rollbackWord(ctx, ws)
		return err
	}
	ws.state = stateWritten

	verified, err := retryOnce(ctx, func() (*domain.UserWord, error) {
		return s.store.GetUserWord(ctx, candidate.ID)
	})
	if err != nil {
		// The insert may have landed unseen.
		ws.state = stateRejected
		if _, derr := s.store.DeleteUserWord(ctx, candidate.ID); derr != nil {
			s.logger.Warn("Failed to remove unverified user word",
				zap.String("word", ws.text),
				zap.String("user_word_id", candidate.ID.String()),
				zap.Error(derr),
			)
		}
		s.rollbackWord(ctx, ws)
		return err
	}
	if verified == nil {
		ws.state = stateRejected
		s.rollbackWord(ctx, ws)
		return fmt.Errorf("user word for %q: %w", ws.text, domain.ErrPolicyBlocked)
	}

	ws.userWord = verified
	ws.userWordCreated = true
	return nil
}

// rollbackWord deletes the global word only if this save created it.
func (s *Synchronizer) rollbackWord(ctx context.Context, ws *wordSave) {
	if !ws.wordCreated || ws.word == nil {
		return
	}
	if err := s.store.DeleteWord(ctx, ws.word.ID); err != nil {
		s.logger.Warn("Failed to roll back created word",
			zap.String("word", ws.text),
			zap.String("word_id", ws.word.ID.String()),
			zap.Error(err),
		)
		return
	}
	ws.wordCreated = false
}

// undoUserWord removes a user word created by this save.
func (s *Synchronizer) undoUserWord(ctx context.Context, ws *wordSave) {
	if !ws.userWordCreated {
		return
	}
	if _, err := s.store.DeleteUserWord(ctx, ws.userWord.ID); err != nil {
		s.logger.Warn("Failed to undo user word",
			zap.String("word", ws.text),
			zap.Error(err),
		)
		return
	}
	ws.userWordCreated = false
}

// recordProgress reports learning activity. Failures are logged only.
func (s *Synchronizer) recordProgress(ctx context.Context, userID int64, wordID uuid.UUID) {
	if s.progress == nil {
		return
	}

	translationCount := 1
	if ts, err := s.store.GetTranslationsByWordIDs(ctx, []uuid.UUID{wordID}, ""); err == nil && len(ts) > translationCount {
		translationCount = len(ts)
	}

	if err := s.progress.RecordLearningActivity(ctx, userID, wordID, translationCount); err != nil {
		s.logger.Warn("Failed to record learning activity",
			zap.Int64("user_id", userID),
			zap.String("word_id", wordID.String()),
			zap.Error(err),
		)
	}
}

func (s *Synchronizer) logFailure(userID int64, ws *wordSave) *wordSave {
	s.logger.Warn("Failed to save word",
		zap.Int64("user_id", userID),
		zap.String("word", ws.input.Original),
		zap.Error(ws.outcome.Reason),
	)
	return ws
}

// dedupeInputs keeps the first input for each original, compared
// case-insensitively. Blank originals are dropped.
func dedupeInputs(words []domain.WordInput) []domain.WordInput {
	seen := make(map[string]struct{}, len(words))
	out := make([]domain.WordInput, 0, len(words))
	for _, w := range words {
		w.Original = strings.TrimSpace(w.Original)
		key := domain.NormalizeText(w.Original)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}
