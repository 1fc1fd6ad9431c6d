package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/valuecompare/backend/internal/domain"
)

// sessionEntry represents a single stored session with expiration
type sessionEntry struct {
	session    *domain.Session
	expiration time.Time
}

// MemoryStore is a thread-safe in-memory session store with TTL support.
// Each Save refreshes the session's expiration.
type MemoryStore struct {
	data  map[string]sessionEntry
	ttl   time.Duration
	mutex sync.RWMutex
	stop  chan struct{}
	once  sync.Once
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	store := &MemoryStore{
		data: make(map[string]sessionEntry),
		ttl:  ttl,
		stop: make(chan struct{}),
	}

	// Remove expired sessions every 10 minutes
	go store.cleanupExpired(10 * time.Minute)

	return store
}

// Get retrieves a copy of a session
func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.data[id]
	if !exists || time.Now().After(entry.expiration) {
		return nil, domain.ErrSessionNotFound
	}

	return entry.session.Clone(), nil
}

// Save stores a copy of the session and resets its TTL
func (s *MemoryStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidRequest
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[session.ID] = sessionEntry{
		session:    session.Clone(),
		expiration: time.Now().Add(s.ttl),
	}

	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, id)
	return nil
}

// cleanupExpired removes expired sessions periodically until Close is called
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if removed := s.removeExpired(time.Now()); removed > 0 {
				log.Printf("[STORE] Removed %d expired sessions", removed)
			}
		}
	}
}

// removeExpired deletes sessions that expired before now and reports how many
func (s *MemoryStore) removeExpired(now time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, entry := range s.data {
		if now.After(entry.expiration) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// Size returns the current number of stored sessions (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all sessions
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]sessionEntry)
}
