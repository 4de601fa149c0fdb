package gtconstants

import (
	"fmt"
	"sync"

	"github.com/gametime/go-constants-sdk/gtcomponents"
	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/internal/constants"
	"github.com/gametime/go-constants-sdk/internal/dispatch"
	"github.com/gametime/go-constants-sdk/internal/hotfixes"
	"github.com/gametime/go-constants-sdk/internal/maintenance"
	"github.com/gametime/go-constants-sdk/internal/remotesync"
	"github.com/gametime/go-constants-sdk/internal/updategate"
	"github.com/gametime/go-constants-sdk/internal/version"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/hashicorp/go-multierror"
	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Client is the Gametime constants client.
//
// Create it with MakeClient. A Client is safe for concurrent use by multiple goroutines; getters never
// block on network activity.
type Client struct {
	syncConfig         subsystems.SyncConfiguration
	store              *constants.Store
	hotfixes           *hotfixes.InterceptionCache
	versions           *version.Comparator
	gate               *updategate.Gate
	poller             *maintenance.Poller
	syncClient         *remotesync.SyncClient
	storage            subsystems.PersistentStore
	source             subsystems.ConstantsSource
	ownQueue           *dispatch.Queue
	onMisconfiguration func(error)
	loggers            ldlog.Loggers
	closeOnce          sync.Once
	closeErr           error
}

// PanicOnMisconfiguration is the default value of Config.OnMisconfiguration. A missing or mistyped
// constant is a programming error in the bundled configuration, so by default it stops the program.
func PanicOnMisconfiguration(err error) {
	panic(err)
}

// MakeClient creates a new client instance.
//
// If Config.Constants is set, the configuration is loaded before MakeClient returns, and if it
// defines an interceptions URL a remote sync is started in the background. MakeClient does not wait
// for the sync; use GetSyncStatusProvider or SetSyncCompletionHandler to find out when it is done.
//
// An error is returned only if a configured component could not be created.
func MakeClient(config Config) (*Client, error) {
	clientContext, err := newClientContextFromConfig(config)
	if err != nil {
		return nil, err
	}
	loggers := clientContext.GetLogging().Loggers

	syncFactory := config.RemoteSync
	if syncFactory == nil {
		syncFactory = gtcomponents.RemoteSync()
	}
	syncConfig, err := syncFactory.Build(clientContext)
	if err != nil {
		return nil, err
	}
	if clientContext.ApplicationInfo.Platform == "" {
		clientContext.ApplicationInfo.Platform = syncConfig.Platform
	}
	syncConfig.Platform = clientContext.ApplicationInfo.Platform

	storageFactory := config.Storage
	if storageFactory == nil {
		storageFactory = gtcomponents.InMemoryStorage()
	}
	storage, err := storageFactory.Build(clientContext)
	if err != nil {
		return nil, err
	}

	client := &Client{
		syncConfig:         syncConfig,
		store:              constants.NewStore(loggers),
		versions:           version.NewComparator(0),
		storage:            storage,
		onMisconfiguration: config.OnMisconfiguration,
		loggers:            loggers,
	}
	if client.onMisconfiguration == nil {
		client.onMisconfiguration = PanicOnMisconfiguration
	}

	dispatcher := config.Dispatcher
	if dispatcher == nil {
		client.ownQueue = dispatch.NewQueue(loggers)
		dispatcher = client.ownQueue
	}
	scheduler := config.Scheduler
	if scheduler == nil {
		scheduler = dispatch.RealScheduler{}
	}

	client.hotfixes = hotfixes.NewInterceptionCache(storage, loggers)
	client.gate = updategate.NewGate(clientContext.ApplicationInfo, client.versions, prefixed(loggers, "UpdateGate:"))
	client.syncClient = remotesync.NewSyncClient(
		remotesync.NewHTTPRequester(clientContext),
		client.interceptionsURL,
		syncConfig.Platform,
		dispatcher,
		clientSyncSink{client},
		prefixed(loggers, "RemoteSync:"),
	)
	client.poller = maintenance.NewPoller(
		client.syncClient,
		scheduler,
		dispatcher,
		syncConfig.MaintenancePollIncrement,
		prefixed(loggers, "Maintenance:"),
	)

	if config.Constants != nil {
		source, err := config.Constants.Build(clientContext)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		client.source = source
		_ = client.ReloadConstants()
		if err := source.Watch(func() { _ = client.ReloadConstants() }); err != nil {
			loggers.Warnf("Unable to watch constants for changes: %s", err)
		}
	}

	loggers.Infof("Starting Gametime constants client %s", Version)
	return client, nil
}

func prefixed(loggers ldlog.Loggers, prefix string) ldlog.Loggers {
	loggers.SetPrefix(prefix)
	return loggers
}

// interceptionsURL comes from the bundled configuration only. Hotfixes never redirect the sync.
func (c *Client) interceptionsURL() (string, bool) {
	if c.syncConfig.Disabled {
		return "", false
	}
	v, err := c.store.Lookup(c.syncConfig.URLKey)
	if err != nil || v.StringValue() == "" {
		return "", false
	}
	return v.StringValue(), true
}

// LoadConstants replaces the bundled configuration with defaults plus the given overrides, applied in
// order. If the result defines an interceptions URL, a remote sync is started.
//
// This is normally done by MakeClient from Config.Constants; calling it directly is useful when the
// configuration does not come from files.
func (c *Client) LoadConstants(defaults ldvalue.ValueMap, overrides ...ldvalue.ValueMap) {
	c.store.Load(defaults, overrides...)
	if _, ok := c.interceptionsURL(); ok {
		c.syncClient.Sync()
	}
}

// ReloadConstants reads Config.Constants again and loads the result as LoadConstants does. If some
// of the documents could not be read, the rest are still loaded and the error is returned. It does
// nothing if Config.Constants was not set.
func (c *Client) ReloadConstants() error {
	if c.source == nil {
		return nil
	}
	docs, err := c.source.Load()
	if err != nil {
		c.loggers.Errorf("Error loading constants: %s", err)
	}
	c.LoadConstants(docs.Defaults, docs.Overrides...)
	return err
}

// Sync starts a fetch of the remote document and returns immediately. It does nothing if no
// interceptions URL is configured.
func (c *Client) Sync() {
	c.syncClient.Sync()
}

// SetSyncCompletionHandler registers a function to be called with the new state every time the
// remote sync changes state. It is called on the client's dispatcher. A nil handler unregisters the
// current one.
func (c *Client) SetSyncCompletionHandler(handler func(interfaces.SyncState)) {
	c.syncClient.SetCompletionHandler(handler)
}

// GetSyncStatusProvider returns an interface for tracking the status of the remote sync.
func (c *Client) GetSyncStatusProvider() interfaces.SyncStatusProvider {
	return c.syncClient.StatusProvider()
}

// GetString returns the string value of a constant. A hotfix takes precedence over the bundled
// configuration, and a hotfix of the wrong type is reported to Config.OnMisconfiguration like a
// mistyped bundled value.
func (c *Client) GetString(key string) string {
	return getConstant(c, key, constants.StringValue)
}

// GetInt returns the value of a constant that must be a number with no fractional part.
func (c *Client) GetInt(key string) int {
	return getConstant(c, key, constants.IntValue)
}

// GetNumber returns the value of a numeric constant.
func (c *Client) GetNumber(key string) float64 {
	return getConstant(c, key, constants.NumberValue)
}

// GetBool returns the value of a boolean constant.
func (c *Client) GetBool(key string) bool {
	return getConstant(c, key, constants.BoolValue)
}

// GetValue returns the value of a constant of any type. Unlike the typed getters, it reports a
// missing key as an error instead of calling Config.OnMisconfiguration.
func (c *Client) GetValue(key string) (ldvalue.Value, error) {
	if v, ok := c.hotfixes.Get(key); ok {
		return v, nil
	}
	return c.store.Lookup(key)
}

// Keys returns the keys of the bundled configuration in sorted order.
func (c *Client) Keys() []string {
	return c.store.Keys()
}

func getConstant[T any](c *Client, key string, convert func(string, ldvalue.Value) (T, error)) T {
	v, ok := c.hotfixes.Get(key)
	var err error
	if !ok {
		v, err = c.store.Lookup(key)
	}
	if err == nil {
		var result T
		if result, err = convert(key, v); err == nil {
			return result
		}
	}
	c.onMisconfiguration(err)
	var zero T
	return zero
}

// IsOlder reports whether version a is older than version b. Versions are dotted strings; missing
// trailing segments count as zero, so "1.2" and "1.2.0" are the same version.
func (c *Client) IsOlder(a, b string) bool {
	return c.versions.IsOlder(a, b)
}

// UpdateNeeded returns true if an update rule from the remote document currently applies.
func (c *Client) UpdateNeeded() bool {
	return c.gate.UpdateNeeded()
}

// UpdateRule returns the update rule that currently applies, if any.
func (c *Client) UpdateRule() (interfaces.UpdateRule, bool) {
	return c.gate.UpdateRule()
}

// IsUndergoingMaintenance returns true if the most recent maintenance document reported that the
// backend is undergoing maintenance.
func (c *Client) IsUndergoingMaintenance() bool {
	return c.poller.IsUndergoingMaintenance()
}

// MaintenanceMessage returns the message of the most recent maintenance document.
func (c *Client) MaintenanceMessage() string {
	return c.poller.Message()
}

// MaintenanceState returns the most recent maintenance state.
func (c *Client) MaintenanceState() interfaces.MaintenanceState {
	return c.poller.State()
}

// SetMaintenancePollingHandler starts polling the remote document for the end of maintenance, and
// calls the handler on the client's dispatcher after every poll. Polling backs off linearly and stops
// once a poll reports that maintenance is over. Registering a handler again restarts polling from
// the base interval; a nil handler stops it.
func (c *Client) SetMaintenancePollingHandler(handler func(interfaces.MaintenanceState)) {
	c.poller.SetCompletionHandler(handler)
}

// Close shuts down the client. It stops polling, cancels any request in progress, and closes the
// configured components. Calling it again has no effect.
//
// If the client owns its dispatcher, Close waits for queued callbacks to finish, so it must not be
// called from one of those callbacks.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.loggers.Info("Closing Gametime constants client")
		if c.poller != nil {
			c.poller.Close()
		}
		if c.syncClient != nil {
			c.syncClient.Close()
		}
		if c.ownQueue != nil {
			c.ownQueue.Close()
		}
		c.versions.Close()

		var result *multierror.Error
		if c.source != nil {
			if err := c.source.Close(); err != nil {
				result = multierror.Append(result, fmt.Errorf("closing constants source: %w", err))
			}
		}
		if err := c.storage.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("closing storage: %w", err))
		}
		c.closeErr = result.ErrorOrNil()
	})
	return c.closeErr
}

// clientSyncSink applies the parts of a synced remote document. It is only called on the dispatcher.
type clientSyncSink struct {
	client *Client
}

func (s clientSyncSink) ReplaceHotfixes(m ldvalue.ValueMap) error {
	return s.client.hotfixes.Replace(m)
}

func (s clientSyncSink) ConfigureUpdateRules(rules ldvalue.Value) {
	s.client.gate.Configure(rules)
}

func (s clientSyncSink) UpdateMaintenance(m ldvalue.Value) {
	s.client.poller.UpdateFromRemote(m)
}
