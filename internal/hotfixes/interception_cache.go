// Package hotfixes holds the key/value overrides delivered by the remote document. They take
// precedence over the bundled configuration.
package hotfixes

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// PersistedKey is the key under which the whole hotfix mapping is stored.
const PersistedKey = "kInterceptionManagerKey"

// InterceptionCache holds the most recently synced hotfixes.
//
// The mapping is only ever replaced as a whole: Replace persists the new mapping and then swaps it in
// with a single atomic store, so readers on any goroutine never see a partial update.
//
// Every read also checks the store, so a mapping saved by another client sharing the same storage
// is picked up. With a caching store this costs one query per cache period; the decoded mapping is
// only rebuilt when the saved bytes change.
type InterceptionCache struct {
	current atomic.Pointer[snapshot]
	store   subsystems.PersistentStore
	loggers ldlog.Loggers
}

type snapshot struct {
	raw      []byte
	hotfixes map[string]ldvalue.Value
}

// NewInterceptionCache creates the cache, initialized from whatever the store holds. If the store is
// empty or unreadable, the cache starts empty.
func NewInterceptionCache(store subsystems.PersistentStore, loggers ldlog.Loggers) *InterceptionCache {
	c := &InterceptionCache{store: store, loggers: loggers}
	c.current.Store(c.loadPersisted())
	return c
}

func (c *InterceptionCache) loadPersisted() *snapshot {
	empty := newSnapshot(nil, ldvalue.ValueMap{})
	data, found, err := c.store.Get(PersistedKey)
	if err != nil {
		c.loggers.Errorf("Unable to read saved hotfixes: %s", err)
		return empty
	}
	if !found {
		return empty
	}
	return c.decodeSnapshot(data, empty)
}

// Replace persists the mapping and then makes it current. If persisting fails, the current mapping
// is left untouched and the error is returned.
func (c *InterceptionCache) Replace(hotfixes ldvalue.ValueMap) error {
	data, err := encode(hotfixes)
	if err != nil {
		return err
	}
	if err := c.store.Set(PersistedKey, data); err != nil {
		return fmt.Errorf("unable to save hotfixes: %w", err)
	}
	c.current.Store(newSnapshot(data, hotfixes))
	if c.loggers.IsDebugEnabled() {
		c.loggers.Debugf("Replaced hotfixes (%d keys)", hotfixes.Count())
	}
	return nil
}

// Get returns the hotfix for the key, if there is one.
func (c *InterceptionCache) Get(key string) (ldvalue.Value, bool) {
	v, ok := c.refresh().hotfixes[key]
	return v, ok
}

// AsNumber returns the hotfix for the key if it exists and is a number.
func (c *InterceptionCache) AsNumber(key string) (float64, bool) {
	if v, ok := c.Get(key); ok && v.IsNumber() {
		return v.Float64Value(), true
	}
	return 0, false
}

// AsString returns the hotfix for the key if it exists and is a string.
func (c *InterceptionCache) AsString(key string) (string, bool) {
	if v, ok := c.Get(key); ok && v.Type() == ldvalue.StringType {
		return v.StringValue(), true
	}
	return "", false
}

// AsAny returns the hotfix for the key converted to a plain Go value (bool, float64, string,
// []interface{} or map[string]interface{}).
func (c *InterceptionCache) AsAny(key string) (interface{}, bool) {
	if v, ok := c.Get(key); ok {
		return v.AsArbitraryValue(), true
	}
	return nil, false
}

// All returns the current mapping.
func (c *InterceptionCache) All() ldvalue.ValueMap {
	return ldvalue.CopyValueMap(c.refresh().hotfixes)
}

// refresh returns the current snapshot, first replacing it if the saved mapping has changed. A store
// that cannot be read or has lost the key leaves the snapshot as it is.
func (c *InterceptionCache) refresh() *snapshot {
	snap := c.current.Load()
	data, found, err := c.store.Get(PersistedKey)
	if err != nil || !found || bytes.Equal(data, snap.raw) {
		return snap
	}
	next := c.decodeSnapshot(data, snap)
	if c.current.CompareAndSwap(snap, next) {
		return next
	}
	return c.current.Load()
}

// decodeSnapshot builds a snapshot from saved bytes. Invalid data keeps the previous mapping but
// records the bytes, so the same data is not reported twice.
func (c *InterceptionCache) decodeSnapshot(data []byte, previous *snapshot) *snapshot {
	if len(data) == 0 {
		return newSnapshot(data, ldvalue.ValueMap{})
	}
	m, err := decode(data)
	if err != nil {
		c.loggers.Errorf("Saved hotfixes were invalid and will be ignored: %s", err)
		return &snapshot{raw: data, hotfixes: previous.hotfixes}
	}
	if c.loggers.IsDebugEnabled() {
		c.loggers.Debugf("Loaded saved hotfixes (%d keys)", m.Count())
	}
	return newSnapshot(data, m)
}

func newSnapshot(raw []byte, hotfixes ldvalue.ValueMap) *snapshot {
	m := hotfixes.AsMap()
	if m == nil {
		m = make(map[string]ldvalue.Value)
	}
	return &snapshot{raw: raw, hotfixes: m}
}

func encode(m ldvalue.ValueMap) ([]byte, error) {
	w := jwriter.NewWriter()
	m.WriteToJSONWriter(&w)
	if err := w.Error(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func decode(data []byte) (ldvalue.ValueMap, error) {
	r := jreader.NewReader(data)
	var m ldvalue.ValueMap
	m.ReadFromJSONReader(&r)
	if err := r.Error(); err != nil {
		return ldvalue.ValueMap{}, err
	}
	return m, nil
}
