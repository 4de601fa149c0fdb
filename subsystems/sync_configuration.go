package subsystems

import "time"

// SyncConfiguration contains the settings for the remote sync and maintenance polling.
//
// See gtcomponents.RemoteSyncBuilder for more details on these properties.
type SyncConfiguration struct {
	// URLKey is the constant whose value is the URL of the remote document.
	URLKey string

	// Platform is the key that selects the platform-specific update and maintenance entries.
	Platform string

	// MaintenancePollIncrement is added to the polling interval after each poll that still reports
	// maintenance.
	MaintenancePollIncrement time.Duration

	// Disabled turns off all remote requests.
	Disabled bool
}
