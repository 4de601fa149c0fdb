package dispatch

import (
	"sync"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
)

// Queue is the default subsystems.Dispatcher. Functions run one at a time, in submission order, on a
// single goroutine owned by the Queue.
//
// Dispatch never blocks; the backlog is unbounded.
type Queue struct {
	lock    sync.Mutex
	pending []func()
	wakeCh  chan struct{}
	closed  bool
	doneCh  chan struct{}
	loggers ldlog.Loggers
}

// NewQueue creates a Queue and starts its goroutine.
func NewQueue(loggers ldlog.Loggers) *Queue {
	q := &Queue{
		wakeCh:  make(chan struct{}, 1),
		doneCh:  make(chan struct{}),
		loggers: loggers,
	}
	go q.run()
	return q
}

// Dispatch schedules fn. Functions submitted after Close are dropped.
func (q *Queue) Dispatch(fn func()) {
	q.lock.Lock()
	if q.closed {
		q.lock.Unlock()
		q.loggers.Debug("Dropping dispatched function after close")
		return
	}
	q.pending = append(q.pending, fn)
	q.lock.Unlock()
	select {
	case q.wakeCh <- struct{}{}:
	default:
	}
}

// Close stops accepting new functions, runs whatever is already queued, and waits for the goroutine
// to exit. It must not be called from a dispatched function.
func (q *Queue) Close() {
	q.lock.Lock()
	alreadyClosed := q.closed
	q.closed = true
	q.lock.Unlock()
	if !alreadyClosed {
		select {
		case q.wakeCh <- struct{}{}:
		default:
		}
	}
	<-q.doneCh
}

func (q *Queue) run() {
	defer close(q.doneCh)
	for range q.wakeCh {
		for {
			q.lock.Lock()
			if len(q.pending) == 0 {
				closed := q.closed
				q.lock.Unlock()
				if closed {
					return
				}
				break
			}
			fn := q.pending[0]
			q.pending[0] = nil
			q.pending = q.pending[1:]
			q.lock.Unlock()
			fn()
		}
	}
}
