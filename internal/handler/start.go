package handler

import (
	"context"
	"fmt"

	"vocam/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	lang, err := h.language(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to load user language", zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	text := fmt.Sprintf(
		"🏠 Main menu\n\nLearning: %s\nSend me words separated by commas or new lines and I will add them to your vocabulary.",
		domain.LanguageName(lang),
	)
	return h.respond(c, text, mainMenuMarkup())
}
