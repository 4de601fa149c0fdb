// Package gtcomponents provides the configuration builders for the constants client.
//
// Each field of gtconstants.Config that configures a component takes one of the builders from this
// package, or a custom implementation of subsystems.ComponentConfigurer:
//
//	config := gtconstants.Config{
//	    Logging:    gtcomponents.Logging().MinLevel(ldlog.Warn),
//	    HTTP:       gtcomponents.HTTPConfiguration().ConnectTimeout(5 * time.Second),
//	    Storage:    gtcomponents.PersistentStorage(gtsqlite.DataStore().Path("constants.db")),
//	    RemoteSync: gtcomponents.RemoteSync().Platform("android"),
//	}
package gtcomponents
