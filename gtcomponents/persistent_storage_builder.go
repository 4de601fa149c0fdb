package gtcomponents

import (
	"time"

	"github.com/gametime/go-constants-sdk/internal/storage"
	"github.com/gametime/go-constants-sdk/subsystems"
)

// PersistentStorageDefaultCacheTime is the default amount of time that recently read values will be
// cached in memory.
const PersistentStorageDefaultCacheTime = 15 * time.Second

// PersistentStorage returns a configuration builder for the store that keeps synced hotfixes across
// restarts. It wraps the specific store implementation, such as gtsqlite.DataStore(), with a read
// cache:
//
//	config := gtconstants.Config{
//	    Storage: gtcomponents.PersistentStorage(
//	        gtsqlite.DataStore().Path("/var/lib/myapp/constants.db"),
//	    ).CacheSeconds(30),
//	}
func PersistentStorage(
	storeFactory subsystems.ComponentConfigurer[subsystems.PersistentStore],
) *PersistentStorageBuilder {
	return &PersistentStorageBuilder{
		storeFactory: storeFactory,
		cacheTTL:     PersistentStorageDefaultCacheTime,
	}
}

// PersistentStorageBuilder is a configuration builder for a persistent store with caching.
//
// See PersistentStorage for details on how to use it.
type PersistentStorageBuilder struct {
	storeFactory subsystems.ComponentConfigurer[subsystems.PersistentStore]
	cacheTTL     time.Duration
}

// CacheTime specifies the cache TTL. A value of zero disables caching; a negative value caches
// forever.
func (b *PersistentStorageBuilder) CacheTime(cacheTime time.Duration) *PersistentStorageBuilder {
	b.cacheTTL = cacheTime
	return b
}

// CacheSeconds is a shortcut for calling CacheTime with a duration in seconds.
func (b *PersistentStorageBuilder) CacheSeconds(cacheSeconds int) *PersistentStorageBuilder {
	return b.CacheTime(time.Duration(cacheSeconds) * time.Second)
}

// CacheForever specifies that values read from the store should never expire from the cache. This
// is only safe if no other process writes to the same store.
func (b *PersistentStorageBuilder) CacheForever() *PersistentStorageBuilder {
	return b.CacheTime(-1 * time.Millisecond)
}

// NoCaching specifies that every read goes to the underlying store.
func (b *PersistentStorageBuilder) NoCaching() *PersistentStorageBuilder {
	return b.CacheTime(0)
}

// Build is called internally by the client.
func (b *PersistentStorageBuilder) Build(
	clientContext subsystems.ClientContext,
) (subsystems.PersistentStore, error) {
	core, err := b.storeFactory.Build(clientContext)
	if err != nil {
		return nil, err
	}
	return storage.NewPersistentStoreWrapper(core, b.cacheTTL, clientContext.GetLogging().Loggers), nil
}

// InMemoryStorage returns the default store configuration, which keeps hotfixes only for the life of
// the process.
func InMemoryStorage() subsystems.ComponentConfigurer[subsystems.PersistentStore] {
	return inMemoryStorageFactory{}
}

type inMemoryStorageFactory struct{}

func (f inMemoryStorageFactory) Build(
	clientContext subsystems.ClientContext,
) (subsystems.PersistentStore, error) {
	return storage.NewInMemoryStore(), nil
}
