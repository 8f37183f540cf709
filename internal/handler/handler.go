package handler

import (
	"context"
	"sync"

	"vocam/internal/domain"
	"vocam/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	users      *service.UserService
	sync       *service.Synchronizer
	aggregator *service.Aggregator
	capture    *service.CaptureService
	logger     *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	users *service.UserService,
	synchronizer *service.Synchronizer,
	aggregator *service.Aggregator,
	capture *service.CaptureService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		users:      users,
		sync:       synchronizer,
		aggregator: aggregator,
		capture:    capture,
		logger:     logger,
		states:     make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/lang", h.handleLanguage)
	h.bot.Handle("/vocab", h.handleVocabulary)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/delete", h.handleDeleteCommand)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnVocabulary, h.handleVocabulary)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnLanguage, h.handleLanguage)
	h.bot.Handle(&btnBack, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// language returns the user's target language, cached in the state
func (h *Handler) language(ctx context.Context, userID int64) (string, error) {
	if st := h.GetState(userID); st.Language != "" {
		return st.Language, nil
	}
	lang, err := h.users.Language(ctx, userID)
	if err != nil {
		return "", err
	}
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, Language: lang})
	return lang, nil
}

// Inline keyboard buttons
var (
	btnVocabulary = tele.Btn{
		Unique: "vocabulary",
		Text:   "📚 My vocabulary",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Stats",
	}
	btnLanguage = tele.Btn{
		Unique: "language",
		Text:   "🌐 Language",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnVocabulary),
		menu.Row(btnStats, btnLanguage),
	)
	return menu
}

// respond edits the message for callbacks and sends a new one for commands
func (h *Handler) respond(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}
