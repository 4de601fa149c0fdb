package storetest

import (
	"testing"

	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/internal/hotfixes"
	"github.com/gametime/go-constants-sdk/subsystems"
	"github.com/gametime/go-constants-sdk/testhelpers"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/launchdarkly/go-test-helpers/v3/testbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PersistentStoreTestSuite provides a configurable test suite for all implementations of
// PersistentStore.
//
// In order to be testable with this tool, a store implementation must have the following
// characteristics:
//
// 1. It has some notion of a "namespace" string that can be used to distinguish between different
// clients using the same underlying storage.
//
// 2. Two instances of the same store type with the same configuration, and the same namespace,
// should be able to see each other's data.
type PersistentStoreTestSuite struct {
	storeFactoryFn    func(string) subsystems.ComponentConfigurer[subsystems.PersistentStore]
	clearDataFn       func(string) error
	errorStoreFactory subsystems.ComponentConfigurer[subsystems.PersistentStore]
	errorValidator    func(assert.TestingT, error)
}

// NewPersistentStoreTestSuite creates a PersistentStoreTestSuite for testing some implementation of
// PersistentStore.
//
// The storeFactoryFn parameter is a function that takes a namespace string and returns a configured
// factory for this store type (for instance, gtsqlite.DataStore().Path(path).Namespace(namespace)).
// If the namespace string is "", it should use the default namespace defined by the implementation.
//
// The clearDataFn parameter is a function that takes a namespace string and deletes any existing data
// that may exist in the storage corresponding to that namespace.
func NewPersistentStoreTestSuite(
	storeFactoryFn func(namespace string) subsystems.ComponentConfigurer[subsystems.PersistentStore],
	clearDataFn func(namespace string) error,
) *PersistentStoreTestSuite {
	return &PersistentStoreTestSuite{
		storeFactoryFn: storeFactoryFn,
		clearDataFn:    clearDataFn,
	}
}

// ErrorStoreFactory enables a test of error handling. The provided errorStoreFactory is expected to
// produce a store instance whose operations should all fail and return an error. The errorValidator
// function, if any, will be called to verify that it is the expected error.
func (s *PersistentStoreTestSuite) ErrorStoreFactory(
	errorStoreFactory subsystems.ComponentConfigurer[subsystems.PersistentStore],
	errorValidator func(assert.TestingT, error),
) *PersistentStoreTestSuite {
	s.errorStoreFactory = errorStoreFactory
	s.errorValidator = errorValidator
	return s
}

// Run runs the configured test suite.
func (s *PersistentStoreTestSuite) Run(t *testing.T) {
	s.runInternal(testbox.RealTest(t))
}

func (s *PersistentStoreTestSuite) runInternal(t testbox.TestingT) {
	t.Run("Get and Set", s.runGetSetTests)
	t.Run("error returns", s.runErrorTests)
	t.Run("namespace independence", s.runNamespaceIndependenceTests)
	t.Run("hotfixes survive a restart", s.runHotfixRestartTests)
}

func (s *PersistentStoreTestSuite) makeStore(namespace string) subsystems.PersistentStore {
	store, err := s.storeFactoryFn(namespace).Build(testhelpers.NewSimpleClientContext(interfaces.ApplicationInfo{}))
	if err != nil {
		panic(err)
	}
	return store
}

func (s *PersistentStoreTestSuite) clearData(namespace string) {
	if err := s.clearDataFn(namespace); err != nil {
		panic(err)
	}
}

func (s *PersistentStoreTestSuite) withStore(namespace string, action func(subsystems.PersistentStore)) {
	store := s.makeStore(namespace)
	defer store.Close() //nolint:errcheck
	action(store)
}

func (s *PersistentStoreTestSuite) runGetSetTests(t testbox.TestingT) {
	t.Run("missing key is not found", func(t testbox.TestingT) {
		s.clearData("")
		s.withStore("", func(store subsystems.PersistentStore) {
			_, found, err := store.Get("key")
			require.NoError(t, err)
			assert.False(t, found)
		})
	})

	t.Run("value can be read back", func(t testbox.TestingT) {
		s.clearData("")
		s.withStore("", func(store subsystems.PersistentStore) {
			require.NoError(t, store.Set("key", []byte(`{"a":1}`)))
			data, found, err := store.Get("key")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `{"a":1}`, string(data))
		})
	})

	t.Run("value is replaced", func(t testbox.TestingT) {
		s.clearData("")
		s.withStore("", func(store subsystems.PersistentStore) {
			require.NoError(t, store.Set("key", []byte("first")))
			require.NoError(t, store.Set("key", []byte("second")))
			data, _, err := store.Get("key")
			require.NoError(t, err)
			assert.Equal(t, "second", string(data))
		})
	})

	t.Run("value is visible to another instance", func(t testbox.TestingT) {
		s.clearData("")
		s.withStore("", func(store1 subsystems.PersistentStore) {
			require.NoError(t, store1.Set("key", []byte("shared")))
			s.withStore("", func(store2 subsystems.PersistentStore) {
				data, found, err := store2.Get("key")
				require.NoError(t, err)
				assert.True(t, found)
				assert.Equal(t, "shared", string(data))
			})
		})
	})
}

func (s *PersistentStoreTestSuite) runErrorTests(t testbox.TestingT) {
	if s.errorStoreFactory == nil {
		t.Skip("not implemented for this store type")
		return
	}
	errorValidator := s.errorValidator
	if errorValidator == nil {
		errorValidator = func(assert.TestingT, error) {}
	}

	store, err := s.errorStoreFactory.Build(testhelpers.NewSimpleClientContext(interfaces.ApplicationInfo{}))
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	t.Run("Get", func(t testbox.TestingT) {
		_, _, err := store.Get("key")
		require.Error(t, err)
		errorValidator(t, err)
	})

	t.Run("Set", func(t testbox.TestingT) {
		err := store.Set("key", []byte("value"))
		require.Error(t, err)
		errorValidator(t, err)
	})
}

func (s *PersistentStoreTestSuite) runNamespaceIndependenceTests(t testbox.TestingT) {
	ns1, ns2 := "testns1", "testns2"
	s.clearData(ns1)
	s.clearData(ns2)

	s.withStore(ns1, func(store1 subsystems.PersistentStore) {
		s.withStore(ns2, func(store2 subsystems.PersistentStore) {
			require.NoError(t, store1.Set("key", []byte("one")))

			_, found, err := store2.Get("key")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store2.Set("key", []byte("two")))
			data1, _, err := store1.Get("key")
			require.NoError(t, err)
			assert.Equal(t, "one", string(data1))
		})
	})
}

func (s *PersistentStoreTestSuite) runHotfixRestartTests(t testbox.TestingT) {
	s.clearData("")
	hotfixMap := ldvalue.ValueMapBuild().
		Set("welcome_text", ldvalue.String("patched")).
		Set("max_retries", ldvalue.Int(5)).
		Build()

	s.withStore("", func(store subsystems.PersistentStore) {
		cache := hotfixes.NewInterceptionCache(store, ldlog.NewDisabledLoggers())
		require.NoError(t, cache.Replace(hotfixMap))
	})

	s.withStore("", func(store subsystems.PersistentStore) {
		cache := hotfixes.NewInterceptionCache(store, ldlog.NewDisabledLoggers())
		assert.Equal(t, hotfixMap, cache.All())
	})
}
