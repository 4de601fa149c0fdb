package sharedtest

import (
	"sync"
	"time"

	"github.com/gametime/go-constants-sdk/subsystems"
)

// FakeScheduler is a subsystems.Scheduler whose timers only fire when the test says so.
type FakeScheduler struct {
	lock      sync.Mutex
	timers    []*FakeTimer
	delays    []time.Duration
	scheduled chan time.Duration
}

// FakeTimer is a timer created by FakeScheduler.
type FakeTimer struct {
	Delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
	owner   *FakeScheduler
}

// NewFakeScheduler creates a FakeScheduler.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{scheduled: make(chan time.Duration, 100)}
}

// AfterFunc records the timer; it fires only when FireNext is called.
func (s *FakeScheduler) AfterFunc(delay time.Duration, fn func()) subsystems.Timer {
	s.lock.Lock()
	t := &FakeTimer{Delay: delay, fn: fn, owner: s}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, delay)
	s.lock.Unlock()
	s.scheduled <- delay
	return t
}

// Stop cancels the timer.
func (t *FakeTimer) Stop() bool {
	t.owner.lock.Lock()
	defer t.owner.lock.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Scheduled returns a channel that receives the delay of every timer as it is created.
func (s *FakeScheduler) Scheduled() <-chan time.Duration {
	return s.scheduled
}

// Delays returns the delays of all timers created so far, in order.
func (s *FakeScheduler) Delays() []time.Duration {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

// ActiveCount returns the number of timers that have neither fired nor been stopped.
func (s *FakeScheduler) ActiveCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// FireNext fires the earliest timer that has neither fired nor been stopped, on the calling
// goroutine. It returns false if there is no such timer.
func (s *FakeScheduler) FireNext() bool {
	s.lock.Lock()
	var next *FakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			next = t
			break
		}
	}
	if next != nil {
		next.fired = true
	}
	s.lock.Unlock()
	if next == nil {
		return false
	}
	next.fn()
	return true
}
