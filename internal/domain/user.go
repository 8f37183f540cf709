package domain

import "time"

// User is a learner known to the bot.
type User struct {
	UserID       int64
	LanguageCode string
	CreatedAt    time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle         UserState = "idle"
	StateChoosingLang UserState = "choosing_language"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State    UserState
	Language string
}
