package handler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"vocam/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const wordsPerPage = 10

// vocabularyPage returns the words of the given 1-based page, the page that
// was actually used and the number of pages.
func vocabularyPage(words []domain.SavedWord, page int) ([]domain.SavedWord, int, int) {
	totalPages := (len(words) + wordsPerPage - 1) / wordsPerPage
	if totalPages == 0 {
		return nil, 1, 0
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * wordsPerPage
	end := start + wordsPerPage
	if end > len(words) {
		end = len(words)
	}
	return words[start:end], page, totalPages
}

// formatVocabulary renders one page of the vocabulary
func formatVocabulary(lang string, words []domain.SavedWord, page, totalPages, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s (%d)", domain.LanguageName(lang), total)
	if totalPages > 1 {
		fmt.Fprintf(&b, " · page %d/%d", page, totalPages)
	}
	b.WriteString("\n")
	for i, w := range words {
		fmt.Fprintf(&b, "\n%d. %s — %s", (page-1)*wordsPerPage+i+1, w.Original, w.Translation)
		if w.Example != "" {
			fmt.Fprintf(&b, "\n   %s", w.Example)
			if w.ExampleEnglish != "" {
				fmt.Fprintf(&b, " (%s)", w.ExampleEnglish)
			}
		}
	}
	return b.String()
}

// formatStats renders per-language counts ordered by language code
func formatStats(counts map[string]int, unique, total int) string {
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	b.WriteString("📊 Your vocabulary\n")
	fmt.Fprintf(&b, "\nUnique words: %d\nTranslations: %d\n", unique, total)
	for _, code := range codes {
		fmt.Fprintf(&b, "\n%s: %d", domain.LanguageName(code), counts[code])
	}
	return b.String()
}

// handleVocabulary handles /vocab [lang] and the vocabulary button
func (h *Handler) handleVocabulary(c tele.Context) error {
	ctx := context.Background()
	var lang string
	if c.Callback() == nil && c.Message() != nil {
		lang = strings.TrimSpace(c.Message().Payload)
	}
	if lang == "" {
		var err error
		if lang, err = h.language(ctx, c.Sender().ID); err != nil {
			h.logger.Error("Failed to load user language", zap.Error(err))
			return c.Send("Something went wrong. Please try again later.")
		}
	}
	return h.showVocabulary(c, domain.NormalizeLanguage(lang), 1)
}

// handleVocabularyPage handles pagination buttons, payload is "lang|page"
func (h *Handler) handleVocabularyPage(c tele.Context, data string) error {
	parts := splitPayload(data)
	if len(parts) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	page, err := strconv.Atoi(parts[1])
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showVocabulary(c, parts[0], page)
}

func (h *Handler) showVocabulary(c tele.Context, lang string, page int) error {
	userID := c.Sender().ID
	if !domain.IsSupportedLanguage(lang) {
		return h.respond(c, fmt.Sprintf("Unknown language %q", lang), mainMenuMarkup())
	}

	words, err := h.sync.GetUserVocabulary(context.Background(), userID, lang, false)
	if err != nil {
		h.logger.Error("Failed to load vocabulary",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("language", lang),
		)
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Failed to load vocabulary"})
		}
		return c.Send("Failed to load vocabulary. Please try again.")
	}

	if len(words) == 0 {
		text := fmt.Sprintf("You have no %s words yet. Send me some!", domain.LanguageName(lang))
		return h.respond(c, text, mainMenuMarkup())
	}

	pageWords, page, totalPages := vocabularyPage(words, page)
	text := formatVocabulary(lang, pageWords, page, totalPages, len(words))

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, w := range pageWords {
		rows = append(rows, markup.Row(markup.Data("🗑 "+w.Original, cbDelete, w.ID)))
	}
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", cbPage, lang, strconv.Itoa(page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", cbPage, lang, strconv.Itoa(page+1)))
		}
		rows = append(rows, navRow)
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)

	return h.respond(c, text, markup)
}

// handleDeleteCommand handles /delete <id>
func (h *Handler) handleDeleteCommand(c tele.Context) error {
	id := strings.TrimSpace(c.Message().Payload)
	if id == "" {
		return c.Send("Usage: /delete <word id>")
	}
	if err := h.deleteWord(c.Sender().ID, id); err != nil {
		return c.Send(deleteErrorText(err))
	}
	return c.Send("🗑 Deleted.")
}

// handleDeleteButton deletes a word and redraws the vocabulary page
func (h *Handler) handleDeleteButton(c tele.Context, id string) error {
	if err := h.deleteWord(c.Sender().ID, id); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: deleteErrorText(err), ShowAlert: true})
	}
	return h.showVocabulary(c, domain.CompositeLanguage(id), 1)
}

var errNotOwned = errors.New("word is not in your vocabulary")

// deleteWord removes a word after checking it belongs to the user
func (h *Handler) deleteWord(userID int64, id string) error {
	ctx := context.Background()
	lang := domain.CompositeLanguage(id)

	words, err := h.sync.GetUserVocabulary(ctx, userID, lang, false)
	if err != nil {
		h.logger.Error("Failed to load vocabulary for delete", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	owned := false
	for _, w := range words {
		if w.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return errNotOwned
	}

	if _, err := h.sync.DeleteWord(ctx, id); err != nil {
		h.logger.Error("Failed to delete word",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("id", id),
		)
		return err
	}

	h.logger.Info("Word deleted", zap.Int64("user_id", userID), zap.String("id", id))
	return nil
}

func deleteErrorText(err error) string {
	switch {
	case errors.Is(err, errNotOwned), errors.Is(err, domain.ErrValidation):
		return "This word is not in your vocabulary."
	case errors.Is(err, domain.ErrPolicyBlocked):
		return "The word could not be deleted."
	default:
		return "Failed to delete the word. Please try again."
	}
}

// handleStats handles /stats and the stats button
func (h *Handler) handleStats(c tele.Context) error {
	userID := c.Sender().ID
	ctx := context.Background()

	text, err := h.statsText(ctx, userID)
	if err == nil {
		return h.respond(c, text, mainMenuMarkup())
	}

	h.logger.Error("Failed to load stats", zap.Error(err), zap.Int64("user_id", userID))
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load stats"})
	}
	return c.Send("Failed to load stats. Please try again.")
}

// statsText renders the user's counts from the aggregator.
func (h *Handler) statsText(ctx context.Context, userID int64) (string, error) {
	counts, err := h.aggregator.GetUserVocabularyCounts(ctx, userID)
	if err != nil {
		return "", err
	}
	unique, err := h.aggregator.GetUniqueWordsCount(ctx, userID)
	if err != nil {
		return "", err
	}
	total, err := h.aggregator.GetTotalVocabularyCount(ctx, userID)
	if err != nil {
		return "", err
	}
	return formatStats(counts, unique, total), nil
}
