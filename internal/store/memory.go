package store

import (
	"context"
	"sync"

	"github.com/nhle/studytrack/internal/model"
)

// MemoryStore keeps entries in a map. It is meant for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	saveErr error
	saves   int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Load decodes the current entries.
func (s *MemoryStore) Load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string][]byte, len(s.entries))
	for k, v := range s.entries {
		copied[k] = append([]byte(nil), v...)
	}
	return decodeSnapshot(copied)
}

// Save encodes snap, unless FailSaves has armed an error.
func (s *MemoryStore) Save(ctx context.Context, snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	entries, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	for k, v := range entries {
		if v == nil {
			delete(s.entries, k)
			continue
		}
		s.entries[k] = v
	}
	s.saves++
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Put stores a raw entry value.
func (s *MemoryStore) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
}

// Entry returns the raw value stored under key.
func (s *MemoryStore) Entry(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok
}

// FailSaves makes every following Save return err. Pass nil to reset.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Saves returns how many snapshots were written successfully.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
