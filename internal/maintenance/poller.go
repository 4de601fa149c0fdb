// Package maintenance tracks whether the backend is in maintenance mode and polls for recovery.
package maintenance

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const (
	activeKey       = "active"
	messageKey      = "message"
	pollIntervalKey = "poll_interval"
)

// Fetcher retrieves only the maintenance entry of the remote document. The boolean is false if there
// is no remote endpoint to ask.
type Fetcher interface {
	FetchMaintenance(ctx context.Context) (ldvalue.Value, bool, error)
}

// Poller holds the current MaintenanceState and, while a handler is registered, polls the remote
// document until maintenance is over.
//
// Every poll waits PollInterval + attempt*increment, where attempt counts the consecutive polls that
// still reported maintenance. Polling stops for good as soon as a poll reports that maintenance is
// not active; registering a handler again starts a new round with the attempt counter at zero.
type Poller struct {
	fetcher    Fetcher
	scheduler  subsystems.Scheduler
	dispatcher subsystems.Dispatcher
	increment  time.Duration
	state      atomic.Pointer[interfaces.MaintenanceState]
	lock       sync.Mutex
	handler    func(interfaces.MaintenanceState)
	timer      subsystems.Timer
	epoch      uint64
	attempt    int
	closed     bool
	ctx        context.Context
	cancel     context.CancelFunc
	loggers    ldlog.Loggers
}

// NewPoller creates a Poller in the default state, not polling. A non-positive increment means
// interfaces.DefaultMaintenancePollIncrement.
func NewPoller(
	fetcher Fetcher,
	scheduler subsystems.Scheduler,
	dispatcher subsystems.Dispatcher,
	increment time.Duration,
	loggers ldlog.Loggers,
) *Poller {
	if increment <= 0 {
		increment = interfaces.DefaultMaintenancePollIncrement
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		fetcher:    fetcher,
		scheduler:  scheduler,
		dispatcher: dispatcher,
		increment:  increment,
		ctx:        ctx,
		cancel:     cancel,
		loggers:    loggers,
	}
	initial := interfaces.DefaultMaintenanceState()
	p.state.Store(&initial)
	return p
}

// State returns the current maintenance state.
func (p *Poller) State() interfaces.MaintenanceState {
	return *p.state.Load()
}

// IsUndergoingMaintenance returns true if the latest maintenance document said so.
func (p *Poller) IsUndergoingMaintenance() bool {
	return p.state.Load().Active
}

// Message returns the maintenance message, or "" if there is none.
func (p *Poller) Message() string {
	return p.state.Load().Message
}

// UpdateFromRemote replaces the state from the platform-specific maintenance entry of the remote
// document. A null value means the entry was absent, and the state is left alone. Any other value
// that is not an object resets the state to its defaults.
func (p *Poller) UpdateFromRemote(raw ldvalue.Value) {
	switch raw.Type() {
	case ldvalue.NullType:
		return
	case ldvalue.ObjectType:
	default:
		p.loggers.Warnf("Maintenance entry was %s rather than an object; resetting to defaults", raw.Type())
	}
	newState := parseState(raw)
	old := p.state.Swap(&newState)
	if old.Active != newState.Active {
		p.loggers.Infof("Maintenance active: %t", newState.Active)
	}
}

func parseState(raw ldvalue.Value) interfaces.MaintenanceState {
	state := interfaces.DefaultMaintenanceState()
	if raw.Type() != ldvalue.ObjectType {
		return state
	}
	if v := raw.GetByKey(activeKey); v.IsBool() {
		state.Active = v.BoolValue()
	}
	if v := raw.GetByKey(messageKey); v.IsString() {
		state.Message = v.StringValue()
	}
	if v := raw.GetByKey(pollIntervalKey); v.IsNumber() && v.Float64Value() > 0 {
		state.PollInterval = time.Duration(v.Float64Value() * float64(time.Second))
	}
	return state
}

// SetCompletionHandler registers a function to be called on the dispatcher after every poll, and
// starts polling from the first attempt. A nil handler stops polling; no poll that was already
// scheduled or in progress will call any handler after that.
func (p *Poller) SetCompletionHandler(handler func(interfaces.MaintenanceState)) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return
	}
	p.stopLocked()
	p.handler = handler
	if handler == nil {
		p.loggers.Info("Maintenance polling stopped")
		return
	}
	p.attempt = 0
	p.loggers.Info("Maintenance polling started")
	p.scheduleLocked(p.nextInterval())
}

// Close stops polling permanently and cancels any poll in progress.
func (p *Poller) Close() {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.handler = nil
	p.stopLocked()
	p.cancel()
}

func (p *Poller) nextInterval() time.Duration {
	return p.state.Load().PollInterval + time.Duration(p.attempt)*p.increment
}

// stopLocked invalidates the current timer and anything a previous poll has in flight.
func (p *Poller) stopLocked() {
	p.epoch++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Poller) scheduleLocked(interval time.Duration) {
	epoch := p.epoch
	if p.loggers.IsDebugEnabled() {
		p.loggers.Debugf("Next maintenance poll in %s", interval)
	}
	p.timer = p.scheduler.AfterFunc(interval, func() { p.poll(epoch) })
}

func (p *Poller) isCurrentLocked(epoch uint64) bool {
	return !p.closed && p.handler != nil && epoch == p.epoch
}

func (p *Poller) poll(epoch uint64) {
	p.lock.Lock()
	current := p.isCurrentLocked(epoch)
	p.lock.Unlock()
	if !current {
		return
	}
	raw, found, err := p.fetcher.FetchMaintenance(p.ctx)
	p.dispatcher.Dispatch(func() {
		p.handlePollResult(epoch, raw, found, err)
	})
}

func (p *Poller) handlePollResult(epoch uint64, raw ldvalue.Value, found bool, err error) {
	p.lock.Lock()
	if !p.isCurrentLocked(epoch) {
		p.lock.Unlock()
		return
	}
	if err != nil {
		p.loggers.Warnf("Maintenance poll failed (will retry): %s", err)
		p.scheduleLocked(p.nextInterval())
		p.lock.Unlock()
		return
	}
	if found {
		p.UpdateFromRemote(raw)
	}
	state := p.State()
	handler := p.handler
	if state.Active {
		p.attempt++
		p.scheduleLocked(p.nextInterval())
	} else {
		p.timer = nil
		p.loggers.Info("Maintenance is over; polling stopped")
	}
	p.lock.Unlock()

	handler(state)
}
