package subsystems

import "time"

// Timer is a pending scheduled call.
type Timer interface {
	// Stop prevents the call from happening, if it has not already happened. It returns false if the
	// call already happened or the timer was already stopped.
	Stop() bool
}

// Scheduler is the timer service used for maintenance polling.
//
// The default implementation uses time.AfterFunc. Tests substitute a scheduler they can advance by hand.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}
