package storetest

import (
	"errors"
	"sync"
	"testing"

	"github.com/gametime/go-constants-sdk/internal/sharedtest"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-test-helpers/v3/testbox"

	"github.com/stretchr/testify/assert"
)

// This verifies that the PersistentStoreTestSuite tests behave as expected as long as the
// PersistentStore implementation behaves as expected, so we can distinguish between flaws in the
// implementations and flaws in the test logic.

type mockDatabase struct {
	lock       sync.Mutex
	namespaces map[string]*sharedtest.MockStorage
}

func (db *mockDatabase) storage(namespace string) *sharedtest.MockStorage {
	db.lock.Lock()
	defer db.lock.Unlock()
	if s, ok := db.namespaces[namespace]; ok {
		return s
	}
	s := sharedtest.NewMockStorage()
	db.namespaces[namespace] = s
	return s
}

func (db *mockDatabase) clear(namespace string) {
	db.lock.Lock()
	delete(db.namespaces, namespace)
	db.lock.Unlock()
}

type mockStoreFactory struct {
	db        *mockDatabase
	namespace string
	fakeError error
}

func (f mockStoreFactory) Build(subsystems.ClientContext) (subsystems.PersistentStore, error) {
	storage := f.db.storage(f.namespace)
	storage.SetFakeError(f.fakeError)
	return &sharedtest.MockPersistentStore{Storage: storage}, nil
}

func TestPersistentStoreTestSuite(t *testing.T) {
	db := &mockDatabase{namespaces: make(map[string]*sharedtest.MockStorage)}

	baseSuite := func(fakeError error) *PersistentStoreTestSuite {
		return NewPersistentStoreTestSuite(
			func(namespace string) subsystems.ComponentConfigurer[subsystems.PersistentStore] {
				return mockStoreFactory{db, namespace, fakeError}
			},
			func(namespace string) error {
				db.clear(namespace)
				return nil
			},
		)
	}

	t.Run("standard tests", func(t *testing.T) {
		baseSuite(nil).Run(t)
	})

	t.Run("causing deliberate errors makes tests fail", func(t *testing.T) {
		s := baseSuite(errors.New("sorry"))
		r := testbox.SandboxTest(s.runInternal)
		assert.True(t, r.Failed, "test should have failed")
	})

	t.Run("ErrorStoreFactory test for deliberate errors", func(t *testing.T) {
		fakeError := errors.New("sorry")
		s := baseSuite(nil).ErrorStoreFactory(
			mockStoreFactory{db, "errornamespace", fakeError},
			func(t assert.TestingT, err error) {
				assert.Equal(t, fakeError, err)
			},
		)
		r := testbox.SandboxTest(s.runInternal)
		assert.False(t, r.Failed)
	})
}
