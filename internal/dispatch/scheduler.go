package dispatch

import (
	"time"

	"github.com/gametime/go-constants-sdk/subsystems"
)

// RealScheduler is the default subsystems.Scheduler, backed by time.AfterFunc.
type RealScheduler struct{}

// AfterFunc calls fn on its own goroutine after the delay.
func (RealScheduler) AfterFunc(delay time.Duration, fn func()) subsystems.Timer {
	return time.AfterFunc(delay, fn)
}
