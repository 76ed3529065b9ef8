package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/loscheesy/ordering/internal/session"
)

// CleanupInterval is how often idle sessions are swept.
const CleanupInterval = time.Minute

type entry struct {
	controller *session.Controller
	lastSeen   time.Time
}

// MemoryStore implements SessionStore with in-memory storage. Sessions idle
// for longer than the TTL are dropped unless an order is being submitted.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	factory  func() *session.Controller
	now      func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore(ttl time.Duration, factory func() *session.Controller) *MemoryStore {
	s := newMemoryStore(ttl, factory, time.Now)

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func newMemoryStore(ttl time.Duration, factory func() *session.Controller, now func() time.Time) *MemoryStore {
	return &MemoryStore{
		sessions:    make(map[string]*entry),
		ttl:         ttl,
		factory:     factory,
		now:         now,
		stopCleanup: make(chan struct{}),
	}
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.expireSessions(); n > 0 {
				slog.Debug("expired idle sessions", slog.Int("count", n))
			}
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	expired := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) && e.controller.State() != domain.StateSubmitting {
			delete(s.sessions, id)
			expired++
		}
	}
	return expired
}

func (s *MemoryStore) Create() (string, *session.Controller) {
	id := uuid.New().String()
	c := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &entry{controller: c, lastSeen: s.now()}
	return id, c
}

func (s *MemoryStore) Get(id string) (*session.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = s.now()
	return e.controller, nil
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the background cleanup and waits for it to finish
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
