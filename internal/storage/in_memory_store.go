package storage

import (
	"sync"

	"golang.org/x/exp/maps"
)

// InMemoryStore is a PersistentStore that keeps values only for the life of the process.
type InMemoryStore struct {
	data map[string][]byte
	lock sync.RWMutex
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{data: make(map[string][]byte)}
}

func (s *InMemoryStore) Get(key string) ([]byte, bool, error) { //nolint:revive
	s.lock.RLock()
	defer s.lock.RUnlock()
	data, ok := s.data[key]
	return data, ok, nil
}

func (s *InMemoryStore) Set(key string, value []byte) error { //nolint:revive
	copied := append([]byte(nil), value...)
	s.lock.Lock()
	s.data[key] = copied
	s.lock.Unlock()
	return nil
}

// Keys returns the stored keys, in no particular order.
func (s *InMemoryStore) Keys() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return maps.Keys(s.data)
}

func (s *InMemoryStore) Close() error { //nolint:revive
	return nil
}
