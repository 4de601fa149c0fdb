// Package storage wraps a subsystems.PersistentStore with read caching.
package storage

import (
	"time"

	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// PersistentStoreWrapper adds a read cache and request coalescing to a PersistentStore.
//
// Writes always go to the underlying store first; the cache is only updated if the write succeeded,
// so the cache never holds a value that is not durable.
type PersistentStoreWrapper struct {
	core     subsystems.PersistentStore
	cache    *cache.Cache
	requests singleflight.Group
	loggers  ldlog.Loggers
}

type cachedValue struct {
	data  []byte
	found bool
}

// NewPersistentStoreWrapper creates the wrapper. A cacheTTL of zero disables caching; a negative
// cacheTTL caches forever, which is the documented behavior of go-cache for negative durations.
func NewPersistentStoreWrapper(
	core subsystems.PersistentStore,
	cacheTTL time.Duration,
	loggers ldlog.Loggers,
) *PersistentStoreWrapper {
	var myCache *cache.Cache
	if cacheTTL != 0 {
		myCache = cache.New(cacheTTL, 5*time.Minute)
	}
	return &PersistentStoreWrapper{
		core:    core,
		cache:   myCache,
		loggers: loggers,
	}
}

// Get returns the value for the key, from the cache if possible.
func (w *PersistentStoreWrapper) Get(key string) ([]byte, bool, error) {
	if w.cache != nil {
		if data, present := w.cache.Get(key); present {
			if cv, ok := data.(cachedValue); ok {
				return cv.data, cv.found, nil
			}
		}
	}
	// Only one query reaches the core store even if several goroutines ask at once.
	result, err, _ := w.requests.Do(key, func() (interface{}, error) {
		data, found, err := w.core.Get(key)
		if err != nil {
			w.loggers.Errorf("Persistent store returned error for key %q: %s", key, err)
			return nil, err
		}
		cv := cachedValue{data: data, found: found}
		if w.cache != nil {
			w.cache.Set(key, cv, cache.DefaultExpiration)
		}
		return cv, nil
	})
	if err != nil {
		return nil, false, err
	}
	cv := result.(cachedValue) //nolint:forcetypeassert // singleflight.Group.Do returns value as interface{}
	return cv.data, cv.found, nil
}

// Set writes the value through to the underlying store.
func (w *PersistentStoreWrapper) Set(key string, value []byte) error {
	if err := w.core.Set(key, value); err != nil {
		w.loggers.Errorf("Persistent store failed to save key %q: %s", key, err)
		if w.cache != nil {
			w.cache.Delete(key)
		}
		return err
	}
	if w.cache != nil {
		w.cache.Set(key, cachedValue{data: value, found: true}, cache.DefaultExpiration)
	}
	return nil
}

// Close closes the underlying store and discards the cache.
func (w *PersistentStoreWrapper) Close() error {
	if w.cache != nil {
		w.cache.Flush()
	}
	return w.core.Close()
}
