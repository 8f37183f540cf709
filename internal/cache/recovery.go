package cache

import (
	"time"

	"github.com/google/uuid"

	"vocam/internal/domain"
)

// Key identifies a recovery entry.
type Key struct {
	UserID int64
	WordID uuid.UUID
}

// RecoveryCache remembers the last successfully saved record per (user, word).
// It is used to confirm writes and to rebuild vocabulary rows whose
// translation the backend hides from the reader.
type RecoveryCache interface {
	Get(userID int64, wordID uuid.UUID) (domain.CacheEntry, bool)
	Put(userID int64, wordID uuid.UUID, value domain.VocabularyRecord, ttl time.Duration)
	InvalidateUser(userID int64)
	InvalidateKeys(keys []Key)
}

// Recovery is the in-memory RecoveryCache.
type Recovery struct {
	entries *TTL[Key, domain.CacheEntry]
}

var _ RecoveryCache = (*Recovery)(nil)

// NewRecovery creates an empty recovery cache.
func NewRecovery() *Recovery {
	return NewRecoveryWithClock(time.Now)
}

// NewRecoveryWithClock creates an empty recovery cache with a custom clock.
func NewRecoveryWithClock(now func() time.Time) *Recovery {
	return &Recovery{entries: NewTTLWithClock[Key, domain.CacheEntry](now)}
}

func (r *Recovery) Get(userID int64, wordID uuid.UUID) (domain.CacheEntry, bool) {
	entry, ts, ok := r.entries.GetWithTimestamp(Key{UserID: userID, WordID: wordID})
	if !ok {
		return domain.CacheEntry{}, false
	}
	entry.Timestamp = ts
	return entry, true
}

func (r *Recovery) Put(userID int64, wordID uuid.UUID, value domain.VocabularyRecord, ttl time.Duration) {
	r.entries.Set(Key{UserID: userID, WordID: wordID}, domain.CacheEntry{Value: value, TTL: ttl}, ttl)
}

func (r *Recovery) InvalidateUser(userID int64) {
	r.entries.DeleteFunc(func(k Key) bool { return k.UserID == userID })
}

func (r *Recovery) InvalidateKeys(keys []Key) {
	r.entries.Delete(keys...)
}
