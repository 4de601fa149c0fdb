package interfaces

import "time"

const (
	// DefaultMaintenancePollInterval is the polling interval used when the remote maintenance
	// document does not specify one.
	DefaultMaintenancePollInterval = 30 * time.Second

	// DefaultMaintenancePollIncrement is added to the polling interval after each poll that still
	// reports maintenance.
	DefaultMaintenancePollIncrement = 30 * time.Second
)

// MaintenanceState is the most recent maintenance status received from the remote document.
type MaintenanceState struct {
	// Active is true if the backend is undergoing maintenance.
	Active bool `json:"active"`
	// Message is the message to display while maintenance is active. It may be empty.
	Message string `json:"message"`
	// PollInterval is the base interval for polling while maintenance is active.
	PollInterval time.Duration `json:"pollInterval"`
}

// DefaultMaintenanceState returns the state used before any maintenance document is received.
func DefaultMaintenanceState() MaintenanceState {
	return MaintenanceState{PollInterval: DefaultMaintenancePollInterval}
}
