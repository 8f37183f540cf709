package handler

import (
	"context"
	"fmt"
	"strings"

	"vocam/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// parseWords splits a message into words on commas and new lines
func parseWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.TrimSpace(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// formatBatchResult renders the three outcome buckets
func formatBatchResult(res *domain.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌐 %s\n", res.Language)
	if len(res.SavedWords) > 0 {
		fmt.Fprintf(&b, "\n✅ Saved (%d): %s", len(res.SavedWords), strings.Join(res.SavedWords, ", "))
	}
	if len(res.ExistingWords) > 0 {
		fmt.Fprintf(&b, "\n📌 Already had (%d): %s", len(res.ExistingWords), strings.Join(res.ExistingWords, ", "))
	}
	if len(res.Errors) > 0 {
		fmt.Fprintf(&b, "\n❌ Failed (%d): %s", len(res.Errors), strings.Join(res.Errors, ", "))
	}
	if res.Total() == 0 {
		b.WriteString("\nNo words to save.")
	}
	return b.String()
}

// handleText saves the words from a text message
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	if h.GetState(userID).State == domain.StateChoosingLang {
		return h.setLanguage(c, text)
	}

	words := parseWords(text)
	if len(words) == 0 {
		return nil
	}

	ctx := context.Background()
	lang, err := h.language(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to load user language", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	res, err := h.capture.CaptureWords(ctx, userID, lang, words)
	if err != nil {
		h.logger.Error("Failed to save words",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return c.Send("Could not save your words. Please try again.")
	}

	h.logger.Info("Words captured",
		zap.Int64("user_id", userID),
		zap.String("language", lang),
		zap.Int("saved", len(res.SavedWords)),
		zap.Int("existing", len(res.ExistingWords)),
		zap.Int("errors", len(res.Errors)),
	)

	return c.Send(formatBatchResult(res), mainMenuMarkup())
}
