package gtcomponents

import (
	"errors"
	"testing"
	"time"

	"github.com/gametime/go-constants-sdk/internal/sharedtest"
	"github.com/gametime/go-constants-sdk/internal/storage"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeFactoryFunc func(subsystems.ClientContext) (subsystems.PersistentStore, error)

func (f storeFactoryFunc) Build(context subsystems.ClientContext) (subsystems.PersistentStore, error) {
	return f(context)
}

func TestPersistentStorageBuilder(t *testing.T) {
	t.Run("default cache time", func(t *testing.T) {
		assert.Equal(t, PersistentStorageDefaultCacheTime, PersistentStorage(InMemoryStorage()).cacheTTL)
	})

	t.Run("cache time options", func(t *testing.T) {
		assert.Equal(t, time.Minute, PersistentStorage(nil).CacheTime(time.Minute).cacheTTL)
		assert.Equal(t, 7*time.Second, PersistentStorage(nil).CacheSeconds(7).cacheTTL)
		assert.Less(t, PersistentStorage(nil).CacheForever().cacheTTL, time.Duration(0))
		assert.Equal(t, time.Duration(0), PersistentStorage(nil).NoCaching().cacheTTL)
	})

	t.Run("wraps the configured store", func(t *testing.T) {
		core := sharedtest.NewMockPersistentStore()
		store, err := PersistentStorage(storeFactoryFunc(func(subsystems.ClientContext) (subsystems.PersistentStore, error) {
			return core, nil
		})).Build(subsystems.BasicClientContext{Logging: subsystems.LoggingConfiguration{Loggers: sharedtest.NewTestLoggers()}})
		require.NoError(t, err)
		require.IsType(t, &storage.PersistentStoreWrapper{}, store)

		require.NoError(t, store.Set("k", []byte("v")))
		data, found, err := core.Get("k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", string(data))
	})

	t.Run("store factory error is returned", func(t *testing.T) {
		fakeErr := errors.New("sorry")
		_, err := PersistentStorage(storeFactoryFunc(func(subsystems.ClientContext) (subsystems.PersistentStore, error) {
			return nil, fakeErr
		})).Build(subsystems.BasicClientContext{})
		assert.Equal(t, fakeErr, err)
	})
}

func TestInMemoryStorage(t *testing.T) {
	store, err := InMemoryStorage().Build(subsystems.BasicClientContext{})
	require.NoError(t, err)
	require.NoError(t, store.Set("k", []byte("v")))
	data, found, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", string(data))
}
