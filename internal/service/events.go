package service

import (
	"sync"

	"vocam/internal/domain"
)

// EventBus delivers vocabulary change events to in-process listeners.
// Handlers run synchronously on the publishing goroutine.
type EventBus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]func(domain.VocabularyChanged)
}

// NewEventBus creates an event bus with no subscribers
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[int]func(domain.VocabularyChanged))}
}

// Subscribe registers h and returns a function that removes it.
func (b *EventBus) Subscribe(h func(domain.VocabularyChanged)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish sends e to every subscriber.
func (b *EventBus) Publish(e domain.VocabularyChanged) {
	b.mu.RLock()
	handlers := make([]func(domain.VocabularyChanged), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}
