package interfaces

import "time"

// SyncState is an enumeration of possible states of the remote sync. It is reported by
// SyncStatusProvider and passed to the sync completion handler.
type SyncState string

const (
	// SyncStateUnstarted is the initial state. The client stays in this state if no sync has been
	// attempted, which includes the case where no interceptions URL is configured.
	SyncStateUnstarted SyncState = "UNSTARTED"

	// SyncStatePending means a request for the remote document has been issued and has not yet
	// completed.
	SyncStatePending SyncState = "PENDING"

	// SyncStateComplete means the most recent request succeeded at the transport level. Individual
	// sub-documents of the response may still have been malformed and skipped.
	SyncStateComplete SyncState = "COMPLETE"

	// SyncStateError means the most recent request failed, either with a network error or a non-2xx
	// response. Previously synced state is retained.
	SyncStateError SyncState = "ERROR"
)

// IsTerminal returns true if the state represents the end of a sync attempt.
func (s SyncState) IsTerminal() bool {
	return s == SyncStateComplete || s == SyncStateError
}

// String returns the name of the state.
func (s SyncState) String() string {
	return string(s)
}

// SyncStatus is information about the remote sync, as reported by SyncStatusProvider.
type SyncStatus struct {
	// State is the current state of the sync.
	State SyncState

	// StateSince is the time when State last changed.
	StateSince time.Time

	// LastError describes the most recent transport failure, if any. It is not cleared by a later
	// successful sync.
	LastError SyncErrorInfo
}

// SyncErrorInfo describes a failed remote sync.
type SyncErrorInfo struct {
	// StatusCode is the HTTP status of the failed response, or zero for a network error.
	StatusCode int

	// Message is a description of the failure.
	Message string

	// Time is when the failure happened.
	Time time.Time
}

// SyncStatusProvider is an interface for querying the status of the remote sync and subscribing to
// state changes. Obtain an instance from Client.GetSyncStatusProvider().
type SyncStatusProvider interface {
	// GetStatus returns the current status of the remote sync.
	GetStatus() SyncStatus

	// AddStatusListener subscribes for notifications of status changes. The returned channel receives
	// a value for every state transition; the caller must read from it or call RemoveStatusListener.
	AddStatusListener() <-chan SyncStatus

	// RemoveStatusListener unsubscribes from notifications of status changes and closes the channel.
	RemoveStatusListener(<-chan SyncStatus)

	// WaitFor blocks until the sync state becomes desiredState, or until the timeout elapses. A
	// timeout of zero or less waits indefinitely. It returns true if the desired state was reached.
	WaitFor(desiredState SyncState, timeout time.Duration) bool
}
