package subsystems

import "io"

// PersistentStore is an interface for a durable key/value blob store, used to keep the most recently
// synced hotfixes across process restarts.
//
// Each implementation is scoped to a single namespace, separate from any other preferences the
// application stores. Values are opaque byte strings; the client is responsible for serialization.
type PersistentStore interface {
	io.Closer

	// Get returns the value stored under the key. The boolean is false if there is no such key; that
	// is not an error.
	Get(key string) ([]byte, bool, error)

	// Set stores the value under the key, replacing any previous value. It must not return until the
	// value is durable.
	Set(key string, value []byte) error
}

// DefaultPersistentStoreNamespace is the namespace used by the built-in PersistentStore
// implementations when none is configured. It is kept separate from any general preferences so that
// clearing one does not clear the other.
const DefaultPersistentStoreNamespace = "GTInterceptionManagerDefault"
