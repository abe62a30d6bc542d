package idempotency

import (
	"context"
	"sync"
	"time"
)

// entry with id 0 is a pending reservation.
type entry struct {
	id      uint
	expires time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{ttl: ttl, now: time.Now, entries: map[string]entry{}}
}

func (s *MemoryStore) Reserve(_ context.Context, key string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && !now.After(e.expires) {
		if e.id == 0 {
			return 0, ErrInProgress
		}
		return e.id, nil
	}
	s.entries[key] = entry{expires: now.Add(PendingTTL)}
	return 0, nil
}

func (s *MemoryStore) Remember(_ context.Context, key string, appointmentID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{id: appointmentID, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Release(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.id == 0 {
		delete(s.entries, key)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
