package sharedtest

import (
	"sync"
)

// MockPersistentStore is a test implementation of subsystems.PersistentStore. Several instances can
// share one MockStorage to simulate a process restart.
type MockPersistentStore struct {
	Storage *MockStorage
	closed  bool
}

// MockStorage is the durable state behind a MockPersistentStore.
type MockStorage struct {
	lock      sync.Mutex
	data      map[string][]byte
	FakeError error
	gets      int
	sets      int
}

// NewMockStorage creates empty storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{data: make(map[string][]byte)}
}

// NewMockPersistentStore creates a store over new, empty storage.
func NewMockPersistentStore() *MockPersistentStore {
	return &MockPersistentStore{Storage: NewMockStorage()}
}

// Get returns the stored value, or FakeError if it is set.
func (m *MockPersistentStore) Get(key string) ([]byte, bool, error) {
	s := m.Storage
	s.lock.Lock()
	defer s.lock.Unlock()
	s.gets++
	if s.FakeError != nil {
		return nil, false, s.FakeError
	}
	data, ok := s.data[key]
	return data, ok, nil
}

// Set stores the value, or returns FakeError if it is set.
func (m *MockPersistentStore) Set(key string, value []byte) error {
	s := m.Storage
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sets++
	if s.FakeError != nil {
		return s.FakeError
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Close marks the store closed.
func (m *MockPersistentStore) Close() error {
	m.closed = true
	return nil
}

// IsClosed returns true if Close was called.
func (m *MockPersistentStore) IsClosed() bool {
	return m.closed
}

// SetFakeError makes subsequent operations fail with err, or succeed again if err is nil.
func (s *MockStorage) SetFakeError(err error) {
	s.lock.Lock()
	s.FakeError = err
	s.lock.Unlock()
}

// Put stores a value directly, bypassing error simulation.
func (s *MockStorage) Put(key string, value []byte) {
	s.lock.Lock()
	s.data[key] = value
	s.lock.Unlock()
}

// Value returns the raw stored value.
func (s *MockStorage) Value(key string) ([]byte, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// GetCount returns the number of Get calls.
func (s *MockStorage) GetCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.gets
}

// SetCount returns the number of Set calls.
func (s *MockStorage) SetCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.sets
}
