package constants

import (
	"sort"
	"sync/atomic"

	"github.com/gametime/go-constants-sdk/interfaces"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Store is the merged key/value mapping of the bundled configuration.
//
// A mapping is immutable once built. Load builds a new one and swaps it in, so readers on any
// goroutine see either the old mapping or the new one in full.
type Store struct {
	values  atomic.Pointer[map[string]ldvalue.Value]
	loggers ldlog.Loggers
}

// NewStore creates an empty Store. Every lookup fails with ErrConstantsNotLoaded until Load is called.
func NewStore(loggers ldlog.Loggers) *Store {
	return &Store{loggers: loggers}
}

// Load replaces the mapping with defaults, then applies each override in order. A later override
// replaces the value of any key it defines; keys it does not define are untouched. Values are
// replaced as a whole, so an object value in an override is not merged into the default object.
func (s *Store) Load(defaults ldvalue.ValueMap, overrides ...ldvalue.ValueMap) {
	merged := defaults.AsMap()
	if merged == nil {
		merged = make(map[string]ldvalue.Value)
	}
	for _, o := range overrides {
		for _, key := range o.Keys(nil) {
			s.loggers.Infof("Overriding default setting key: %s", key)
			merged[key] = o.Get(key)
		}
	}
	s.values.Store(&merged)
}

// IsLoaded returns true if Load has been called.
func (s *Store) IsLoaded() bool {
	return s.values.Load() != nil
}

// Lookup returns the value for the key.
func (s *Store) Lookup(key string) (ldvalue.Value, error) {
	values := s.values.Load()
	if values == nil {
		return ldvalue.Null(), interfaces.ErrConstantsNotLoaded
	}
	v, ok := (*values)[key]
	if !ok {
		return ldvalue.Null(), interfaces.MissingKeyError{Key: key}
	}
	return v, nil
}

// Keys returns the loaded keys in sorted order, or nil if nothing is loaded.
func (s *Store) Keys() []string {
	values := s.values.Load()
	if values == nil {
		return nil
	}
	keys := make([]string, 0, len(*values))
	for k := range *values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int returns the value for the key, which must be a number with no fractional part.
func (s *Store) Int(key string) (int, error) {
	v, err := s.Lookup(key)
	if err != nil {
		return 0, err
	}
	return IntValue(key, v)
}

// Number returns the value for the key, which must be a number.
func (s *Store) Number(key string) (float64, error) {
	v, err := s.Lookup(key)
	if err != nil {
		return 0, err
	}
	return NumberValue(key, v)
}

// Bool returns the value for the key, which must be a boolean.
func (s *Store) Bool(key string) (bool, error) {
	v, err := s.Lookup(key)
	if err != nil {
		return false, err
	}
	return BoolValue(key, v)
}

// String returns the value for the key, which must be a string.
func (s *Store) String(key string) (string, error) {
	v, err := s.Lookup(key)
	if err != nil {
		return "", err
	}
	return StringValue(key, v)
}
