package diary

import (
	"context"
	"sort"
	"sync"
)

// Store abstracts the append-only entry table so the analysis pipeline
// can run against an in-memory fake in tests.
type Store interface {
	// Append persists one entry. Entries are immutable afterwards.
	Append(ctx context.Context, entry Entry) error
	// List returns every entry ordered by created_at ascending.
	List(ctx context.Context) ([]Entry, error)
}

// MemoryStore implements Store with an in-memory slice, suitable for
// tests and for running without a database file.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Entry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append stores a copy of the entry.
func (s *MemoryStore) Append(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, entry)
	return nil
}

// List returns entries sorted by created_at ascending.
func (s *MemoryStore) List(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]Entry, len(s.items))
	copy(copied, s.items)
	sort.SliceStable(copied, func(i, j int) bool {
		return copied[i].CreatedAt < copied[j].CreatedAt
	})
	return copied, nil
}
