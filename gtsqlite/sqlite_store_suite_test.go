package gtsqlite

import (
	"path/filepath"
	"testing"

	"github.com/gametime/go-constants-sdk/subsystems"
	"github.com/gametime/go-constants-sdk/testhelpers/storetest"
)

func TestSQLiteStoreSuite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.db")

	storetest.NewPersistentStoreTestSuite(
		func(namespace string) subsystems.ComponentConfigurer[subsystems.PersistentStore] {
			return DataStore().Path(path).Namespace(namespace)
		},
		func(namespace string) error {
			if namespace == "" {
				namespace = subsystems.DefaultPersistentStoreNamespace
			}
			store, err := openStore(path, namespace)
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck
			_, err = store.db.Exec("DELETE FROM persisted_values WHERE namespace = ?", namespace)
			return err
		},
	).Run(t)
}
