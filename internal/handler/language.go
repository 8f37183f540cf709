package handler

import (
	"context"
	"fmt"
	"strings"

	"vocam/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const languagesPerRow = 3

// languageMarkup builds the language selection keyboard
func languageMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	row := tele.Row{}
	for _, code := range domain.LanguageCodes() {
		row = append(row, markup.Data(domain.LanguageName(code), cbLanguage, code))
		if len(row) == languagesPerRow {
			rows = append(rows, row)
			row = tele.Row{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)
	return markup
}

// handleLanguage handles /lang [code] and the language button
func (h *Handler) handleLanguage(c tele.Context) error {
	userID := c.Sender().ID

	if c.Callback() == nil {
		if code := strings.TrimSpace(c.Message().Payload); code != "" {
			return h.setLanguage(c, code)
		}
	}

	h.SetState(userID, &domain.StateData{
		State:    domain.StateChoosingLang,
		Language: h.GetState(userID).Language,
	})
	return h.respond(c, "🌐 Choose the language to learn:", languageMarkup())
}

// handleLanguageSelection handles a language button
func (h *Handler) handleLanguageSelection(c tele.Context, code string) error {
	return h.setLanguage(c, code)
}

func (h *Handler) setLanguage(c tele.Context, code string) error {
	userID := c.Sender().ID

	lang, err := h.users.SetLanguage(context.Background(), userID, code)
	if err != nil {
		h.logger.Warn("Failed to set language",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("code", code),
		)
		return h.respond(c, fmt.Sprintf("Unknown language %q. Choose one below:", code), languageMarkup())
	}

	h.SetState(userID, &domain.StateData{State: domain.StateIdle, Language: lang})
	h.logger.Info("Language changed", zap.Int64("user_id", userID), zap.String("language", lang))

	text := fmt.Sprintf("✅ Now learning %s. Send me words to translate.", domain.LanguageName(lang))
	return h.respond(c, text, mainMenuMarkup())
}
