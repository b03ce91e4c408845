// Package session provides SessionStore implementations. The session is the
// only cross-stage mutable state; it lives for one browser session and is
// keyed by the session cookie.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"insightflow/domain/core"
	"insightflow/ports"
)

// DefaultTTL bounds how long an untouched session survives. Access slides
// the expiry, so an active browser session never expires underneath the
// user.
const DefaultTTL = 4 * time.Hour

type memoryEntry struct {
	session   ports.Session
	expiresAt time.Time
}

// MemoryStore is the default, single-process SessionStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[core.SessionID]*memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

var _ ports.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store and starts its expiry sweeper.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	store := &MemoryStore{
		entries: make(map[core.SessionID]*memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go store.sweep()
	return store
}

// Get returns the session for an ID. Unknown or expired IDs read as an empty
// session; absence is a valid state, not an error.
func (s *MemoryStore) Get(_ context.Context, id core.SessionID) (ports.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[id]
	if !ok || time.Now().After(entry.expiresAt) {
		return ports.Session{ID: id}, nil
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.session, nil
}

// SetDataset records the dataset established by a successful upload.
func (s *MemoryStore) SetDataset(_ context.Context, id core.SessionID, dataset core.DatasetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entry(id)
	entry.session.DatasetID = dataset
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

// SetBestModel records the best model established by a successful training
// run.
func (s *MemoryStore) SetBestModel(_ context.Context, id core.SessionID, model core.ModelID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entry(id)
	entry.session.BestModelID = model
	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

// Clear resets the session to empty. Idempotent.
func (s *MemoryStore) Clear(_ context.Context, id core.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Close stops the expiry sweeper.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

// entry returns the live entry for an ID, creating one if needed. Callers
// hold s.mu.
func (s *MemoryStore) entry(id core.SessionID) *memoryEntry {
	if e, ok := s.entries[id]; ok && time.Now().Before(e.expiresAt) {
		return e
	}
	e := &memoryEntry{session: ports.Session{ID: id}}
	s.entries[id] = e
	return e
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(s.ttl / 4)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			removed := 0
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
					removed++
				}
			}
			s.mu.Unlock()
			if removed > 0 {
				log.Printf("[SessionStore] Swept %d expired sessions", removed)
			}
		}
	}
}
