package store

import (
	"context"
	"sync"
	"time"

	"github.com/zahlenlotto/lotto-services/internal/comm"
)

// TTL is the sliding expiry applied from the time of each write.
const TTL = 24 * time.Hour

// StateStore holds one GameState record per session seed. Get returns nil
// for an unknown seed; the service layer turns that into the default-empty
// record.
type StateStore interface {
	Get(ctx context.Context, seed string) (*comm.GameState, error)
	Put(ctx context.Context, seed string, state *comm.GameState) error
	Delete(ctx context.Context, seed string) error
	Count(ctx context.Context) (int64, error)
}

type memoryEntry struct {
	state     comm.GameState
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when no MongoDB is configured.
// Each write sweeps entries whose expiry has passed.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, seed string) (*comm.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[seed]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, nil
	}
	state := entry.state
	return &state, nil
}

func (s *MemoryStore) Put(ctx context.Context, seed string, state *comm.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[seed] = memoryEntry{state: *state, expiresAt: now.Add(TTL)}

	for key, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, seed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, seed)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var n int64
	for _, entry := range s.entries {
		if !now.After(entry.expiresAt) {
			n++
		}
	}
	return n, nil
}
