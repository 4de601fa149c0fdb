package dispatch

import (
	"testing"
	"time"

	th "github.com/launchdarkly/go-test-helpers/v3"
)

func TestRealSchedulerFires(t *testing.T) {
	firedCh := make(chan struct{})
	RealScheduler{}.AfterFunc(time.Millisecond, func() { close(firedCh) })
	th.AssertChannelClosed(t, firedCh, time.Second)
}

func TestRealSchedulerStopPreventsCall(t *testing.T) {
	firedCh := make(chan struct{}, 1)
	timer := RealScheduler{}.AfterFunc(50*time.Millisecond, func() { firedCh <- struct{}{} })
	timer.Stop()
	th.AssertNoMoreValues(t, firedCh, 100*time.Millisecond)
}
