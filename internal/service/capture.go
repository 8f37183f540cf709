package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vocam/internal/domain"
)

// Translator produces translations and example sentences for a word.
type Translator interface {
	Translate(ctx context.Context, word, lang string) (string, error)
	ExampleSentence(ctx context.Context, word, lang string) (domain.Example, error)
}

// CaptureService turns detected or typed words into saved vocabulary
type CaptureService struct {
	sync       *Synchronizer
	translator Translator
	logger     *zap.Logger
	threshold  float64
}

// NewCaptureService creates a new capture service
func NewCaptureService(sync *Synchronizer, translator Translator, logger *zap.Logger, threshold float64) *CaptureService {
	return &CaptureService{
		sync:       sync,
		translator: translator,
		logger:     logger,
		threshold:  threshold,
	}
}

// CaptureDetections saves the labels of detections at or above the
// confidence threshold.
func (c *CaptureService) CaptureDetections(ctx context.Context, userID int64, lang string, detections []domain.Detection) (*domain.BatchResult, error) {
	labels := make([]string, 0, len(detections))
	for _, d := range detections {
		if d.Confidence < c.threshold {
			continue
		}
		labels = append(labels, d.Label)
	}
	return c.CaptureWords(ctx, userID, lang, labels)
}

// CaptureWords translates words and saves them as one batch. Words the user
// already has in lang are reported as existing without a translator call. A
// word whose translation fails is reported in Errors; a missing example
// sentence is not an error.
func (c *CaptureService) CaptureWords(ctx context.Context, userID int64, lang string, words []string) (*domain.BatchResult, error) {
	lang = domain.NormalizeLanguage(lang)
	if !domain.IsSupportedLanguage(lang) {
		return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrValidation, lang)
	}

	raw := make([]domain.WordInput, 0, len(words))
	for _, w := range words {
		raw = append(raw, domain.WordInput{Original: w})
	}

	var inputs []domain.WordInput
	var skipped []domain.Outcome
	for _, in := range dedupeInputs(raw) {
		has, err := c.sync.HasWord(ctx, userID, in.Original, lang)
		if err != nil {
			// The save pipeline repeats the lookup and reports the failure.
			c.logger.Debug("Failed to check existing word",
				zap.String("word", in.Original),
				zap.Error(err),
			)
		}
		if has {
			skipped = append(skipped, domain.AlreadyExists(in.Original))
			continue
		}

		translation, err := c.translator.Translate(ctx, in.Original, lang)
		if err == nil && translation == "" {
			err = fmt.Errorf("empty translation")
		}
		if err != nil {
			c.logger.Warn("Failed to translate word",
				zap.String("word", in.Original),
				zap.String("language", lang),
				zap.Error(err),
			)
			skipped = append(skipped, domain.Failed(in.Original, err))
			continue
		}
		in.Translation = translation

		example, err := c.translator.ExampleSentence(ctx, in.Original, lang)
		if err != nil {
			c.logger.Warn("Failed to build example sentence",
				zap.String("word", in.Original),
				zap.String("language", lang),
				zap.Error(err),
			)
		} else {
			in.Example = example.Translated
			in.ExampleEnglish = example.English
		}
		inputs = append(inputs, in)
	}

	if len(inputs) == 0 {
		return domain.NewBatchResult(lang, skipped), nil
	}

	res, err := c.sync.SaveMultipleWords(ctx, userID, lang, inputs)
	if err != nil {
		return nil, err
	}
	if len(skipped) == 0 {
		return res, nil
	}
	return domain.NewBatchResult(lang, append(res.Outcomes, skipped...)), nil
}
