package gtconstants

import (
	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/subsystems"
)

// Config exposes advanced configuration options for the Client.
//
// All of these settings are optional, so an empty Config struct is always valid. See the description
// of each field for the default behavior if it is not set.
//
// Most of the Config fields are factories for subcomponents of the client. The actual implementation
// types, which have methods for configuring that subcomponent, are provided by corresponding
// functions in the gtcomponents package. For instance, to make the client fetch the Android entries
// of the remote document:
//
//	var config gtconstants.Config
//	config.RemoteSync = gtcomponents.RemoteSync().Platform("android")
type Config struct {
	// ApplicationInfo describes the running application. The versions are checked against the update
	// rules of the remote document, and the preferred locales select the update message.
	ApplicationInfo interfaces.ApplicationInfo

	// Constants provides the bundled configuration: a default document plus ordered overrides.
	//
	// Use gtfiledata.Constants() to read them from JSON or YAML files, or gtcomponents.StaticConstants()
	// to supply them directly. If nil, no configuration is loaded until Client.LoadConstants is called,
	// and every lookup before then is reported as a misconfiguration.
	Constants subsystems.ComponentConfigurer[subsystems.ConstantsSource]

	// Dispatcher is the execution context on which remote responses are applied and application
	// callbacks are called.
	//
	// If nil, the client runs its own serial queue on a dedicated goroutine.
	Dispatcher subsystems.Dispatcher

	// HTTP provides configuration for the HTTP client used for remote requests.
	//
	// Create this with gtcomponents.HTTPConfiguration(). If nil, the default is
	// gtcomponents.HTTPConfiguration().
	HTTP subsystems.ComponentConfigurer[subsystems.HTTPConfiguration]

	// Logging provides logging configuration.
	//
	// Create this with gtcomponents.Logging() or gtcomponents.NoLogging(). If nil, the default is
	// gtcomponents.Logging().
	Logging subsystems.ComponentConfigurer[subsystems.LoggingConfiguration]

	// OnMisconfiguration is called when a constant is requested that is missing, has the wrong type,
	// or is requested before any configuration was loaded. The getter then returns the zero value of
	// its type.
	//
	// If nil, the default is PanicOnMisconfiguration.
	OnMisconfiguration func(error)

	// RemoteSync provides configuration for the remote document and maintenance polling.
	//
	// Create this with gtcomponents.RemoteSync(). If nil, the default is gtcomponents.RemoteSync().
	RemoteSync subsystems.ComponentConfigurer[subsystems.SyncConfiguration]

	// Scheduler is the timer service for maintenance polling. If nil, real timers are used.
	Scheduler subsystems.Scheduler

	// Storage is where synced hotfixes are persisted, so that they apply from the start of the next
	// process.
	//
	// Use gtcomponents.PersistentStorage() with a store such as gtsqlite.DataStore(). If nil, the
	// default is gtcomponents.InMemoryStorage(), which keeps hotfixes only for the life of the process.
	Storage subsystems.ComponentConfigurer[subsystems.PersistentStore]
}
