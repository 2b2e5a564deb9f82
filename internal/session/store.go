package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type entry struct {
	userID    int64
	expiresAt time.Time
}

// Store is an in-memory token store mapping opaque session tokens to user
// ids. It exists only so the HTTP boundary can hand the core an
// authenticated principal; tokens are not persisted.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Create issues a fresh token for the given user.
func (s *Store) Create(userID int64) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	token := hex.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = entry{userID: userID, expiresAt: s.now().Add(s.ttl)}
	return token
}

// Resolve returns the user id for a token. Expired tokens are dropped lazily.
func (s *Store) Resolve(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[token]
	if !ok {
		return 0, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, token)
		return 0, false
	}
	return e.userID, true
}

// Delete invalidates a token. Unknown tokens are a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
}
