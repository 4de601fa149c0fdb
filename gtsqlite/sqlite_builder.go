package gtsqlite

import (
	"github.com/gametime/go-constants-sdk/subsystems"
)

// DataStoreBuilder is a builder for configuring the SQLite-based persistent store.
//
// Obtain an instance of this type by calling DataStore(). After calling its methods to specify any
// desired custom settings, wrap it in gtcomponents.PersistentStorage().
type DataStoreBuilder struct {
	path      string
	namespace string
}

// DataStore returns a configurable builder for a SQLite-backed store.
func DataStore() *DataStoreBuilder {
	return &DataStoreBuilder{namespace: subsystems.DefaultPersistentStoreNamespace}
}

// Path sets the database file. Missing parent directories are created. The default is
// ~/.gtconstants/constants.db.
func (b *DataStoreBuilder) Path(path string) *DataStoreBuilder {
	b.path = path
	return b
}

// Namespace sets the namespace that separates this client's values from any others in the same
// database. The default is subsystems.DefaultPersistentStoreNamespace.
func (b *DataStoreBuilder) Namespace(namespace string) *DataStoreBuilder {
	if namespace == "" {
		namespace = subsystems.DefaultPersistentStoreNamespace
	}
	b.namespace = namespace
	return b
}

// Build is called internally by the client.
func (b *DataStoreBuilder) Build(context subsystems.ClientContext) (subsystems.PersistentStore, error) {
	store, err := openStore(b.path, b.namespace)
	if err != nil {
		return nil, err
	}
	loggers := context.GetLogging().Loggers
	loggers.Infof("Using SQLite store at %s with namespace %q", store.path, store.namespace)
	return store, nil
}
