package domain

// OutcomeKind is the classification of one word in a batch save.
type OutcomeKind int

const (
	OutcomeSaved OutcomeKind = iota
	OutcomeExists
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSaved:
		return "saved"
	case OutcomeExists:
		return "exists"
	default:
		return "failed"
	}
}

// Outcome is the result for a single word.
type Outcome struct {
	Original string
	Kind     OutcomeKind
	Reason   error
}

// Saved, AlreadyExists and Failed construct outcomes.
func Saved(original string) Outcome { return Outcome{Original: original, Kind: OutcomeSaved} }

func AlreadyExists(original string) Outcome { return Outcome{Original: original, Kind: OutcomeExists} }

func Failed(original string, reason error) Outcome {
	return Outcome{Original: original, Kind: OutcomeFailed, Reason: reason}
}

// BatchResult partitions a deduplicated batch into three buckets.
// Language is the display name of LanguageCode.
type BatchResult struct {
	SavedWords    []string
	ExistingWords []string
	Errors        []string
	Language      string
	LanguageCode  string
	Outcomes      []Outcome
}

// NewBatchResult folds outcomes into the three buckets.
func NewBatchResult(languageCode string, outcomes []Outcome) *BatchResult {
	r := &BatchResult{
		SavedWords:    []string{},
		ExistingWords: []string{},
		Errors:        []string{},
		Language:      LanguageName(languageCode),
		LanguageCode:  languageCode,
		Outcomes:      outcomes,
	}
	for _, o := range outcomes {
		switch o.Kind {
		case OutcomeSaved:
			r.SavedWords = append(r.SavedWords, o.Original)
		case OutcomeExists:
			r.ExistingWords = append(r.ExistingWords, o.Original)
		default:
			r.Errors = append(r.Errors, o.Original)
		}
	}
	return r
}

// Total returns the number of words across all buckets.
func (r *BatchResult) Total() int {
	return len(r.SavedWords) + len(r.ExistingWords) + len(r.Errors)
}

// SaveStatus is the single-word view of a batch result.
type SaveStatus string

const (
	SaveSuccess SaveStatus = "success"
	SaveExists  SaveStatus = "exists"
	SaveError   SaveStatus = "error"
)

// Status collapses a one-word batch into a SaveStatus.
func (r *BatchResult) Status() SaveStatus {
	switch {
	case len(r.SavedWords) > 0:
		return SaveSuccess
	case len(r.ExistingWords) > 0:
		return SaveExists
	default:
		return SaveError
	}
}
