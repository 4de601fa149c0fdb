package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	th "github.com/launchdarkly/go-test-helpers/v3"

	"github.com/stretchr/testify/assert"
)

func TestQueueRunsFunctionsInOrder(t *testing.T) {
	q := NewQueue(ldlog.NewDisabledLoggers())
	defer q.Close()

	resultCh := make(chan int, 100)
	for i := 0; i < 50; i++ {
		n := i
		q.Dispatch(func() { resultCh <- n })
	}
	for i := 0; i < 50; i++ {
		assert.Equal(t, i, th.RequireValue(t, resultCh, time.Second))
	}
}

func TestQueueNeverRunsOnCallingGoroutine(t *testing.T) {
	q := NewQueue(ldlog.NewDisabledLoggers())
	defer q.Close()

	var lock sync.Mutex
	lock.Lock()
	doneCh := make(chan struct{})
	q.Dispatch(func() {
		lock.Lock()
		defer lock.Unlock()
		close(doneCh)
	})
	// If Dispatch ran the function inline, we would have deadlocked before getting here.
	lock.Unlock()
	th.AssertChannelClosed(t, doneCh, time.Second)
}

func TestQueueRunsFunctionsOneAtATime(t *testing.T) {
	q := NewQueue(ldlog.NewDisabledLoggers())

	var active, maxActive int
	var lock sync.Mutex
	for i := 0; i < 20; i++ {
		q.Dispatch(func() {
			lock.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			lock.Unlock()
			time.Sleep(time.Millisecond)
			lock.Lock()
			active--
			lock.Unlock()
		})
	}
	q.Close()
	assert.Equal(t, 1, maxActive)
}

func TestQueueCloseDrainsPendingAndDropsLater(t *testing.T) {
	q := NewQueue(ldlog.NewDisabledLoggers())

	resultCh := make(chan string, 10)
	q.Dispatch(func() { resultCh <- "before" })
	q.Close()
	q.Dispatch(func() { resultCh <- "after" })

	assert.Equal(t, "before", th.RequireValue(t, resultCh, time.Second))
	th.AssertNoMoreValues(t, resultCh, 50*time.Millisecond)
}

func TestQueueCloseIsIdempotent(t *testing.T) {
	q := NewQueue(ldlog.NewDisabledLoggers())
	q.Close()
	q.Close()
}
