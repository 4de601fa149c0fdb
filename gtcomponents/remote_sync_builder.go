package gtcomponents

import (
	"time"

	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/subsystems"
)

const (
	// DefaultInterceptionsURLKey is the constant that holds the remote document URL if
	// RemoteSyncBuilder.URLKey is not set.
	DefaultInterceptionsURLKey = "interceptions_url"

	// DefaultPlatform is the platform key used if RemoteSyncBuilder.Platform is not set.
	DefaultPlatform = "ios"
)

// RemoteSyncBuilder contains methods for configuring the remote sync and maintenance polling.
//
//	config := gtconstants.Config{
//	    RemoteSync: gtcomponents.RemoteSync().Platform("android"),
//	}
type RemoteSyncBuilder struct {
	config subsystems.SyncConfiguration
}

// RemoteSync returns a configuration builder for remote sync.
func RemoteSync() *RemoteSyncBuilder {
	return &RemoteSyncBuilder{
		config: subsystems.SyncConfiguration{
			URLKey:                   DefaultInterceptionsURLKey,
			Platform:                 DefaultPlatform,
			MaintenancePollIncrement: interfaces.DefaultMaintenancePollIncrement,
		},
	}
}

// URLKey sets the name of the constant whose string value is the remote document URL.
func (b *RemoteSyncBuilder) URLKey(key string) *RemoteSyncBuilder {
	if key == "" {
		key = DefaultInterceptionsURLKey
	}
	b.config.URLKey = key
	return b
}

// Platform sets the key used to select the update and maintenance entries of the remote document.
func (b *RemoteSyncBuilder) Platform(platform string) *RemoteSyncBuilder {
	if platform == "" {
		platform = DefaultPlatform
	}
	b.config.Platform = platform
	return b
}

// MaintenancePollIncrement sets how much longer each maintenance poll waits than the one before.
// The default is 30 seconds.
func (b *RemoteSyncBuilder) MaintenancePollIncrement(increment time.Duration) *RemoteSyncBuilder {
	if increment <= 0 {
		increment = interfaces.DefaultMaintenancePollIncrement
	}
	b.config.MaintenancePollIncrement = increment
	return b
}

// Disabled turns off remote requests entirely. Sync does nothing, and maintenance polls always
// report the current state.
func (b *RemoteSyncBuilder) Disabled(disabled bool) *RemoteSyncBuilder {
	b.config.Disabled = disabled
	return b
}

// Build is called internally by the client.
func (b *RemoteSyncBuilder) Build(clientContext subsystems.ClientContext) (subsystems.SyncConfiguration, error) {
	return b.config, nil
}
