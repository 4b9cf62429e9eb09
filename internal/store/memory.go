package store

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used by tests and local development.
type MemStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{docs: map[string][]byte{}}
}

func (s *MemStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.docs[key]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *MemStore) Update(_ context.Context, key string, fn func(cur []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.docs[key])
	if err != nil {
		return err
	}
	s.docs[key] = next
	return nil
}

func (s *MemStore) Ping(context.Context) error { return nil }

func (s *MemStore) Close() error { return nil }
