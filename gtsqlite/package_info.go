// Package gtsqlite provides a SQLite-backed persistent store for the constants client, so that
// hotfixes received from the remote document survive a restart.
//
//	config := gtconstants.Config{
//	    Storage: gtcomponents.PersistentStorage(gtsqlite.DataStore().Path("/var/lib/myapp/constants.db")),
//	}
//
// Values are kept in a single table keyed by (namespace, key). Several clients may share one database
// file by using different namespaces.
package gtsqlite
