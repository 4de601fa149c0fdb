package remotesync

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/internal/dispatch"
	"github.com/gametime/go-constants-sdk/internal/sharedtest"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldlogtest"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	th "github.com/launchdarkly/go-test-helpers/v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://fake/interceptions"

type recordingSink struct {
	lock        sync.Mutex
	hotfixes    []ldvalue.ValueMap
	updates     []ldvalue.Value
	maintenance []ldvalue.Value
	hotfixErr   error
}

func (s *recordingSink) ReplaceHotfixes(hotfixes ldvalue.ValueMap) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.hotfixes = append(s.hotfixes, hotfixes)
	return s.hotfixErr
}

func (s *recordingSink) ConfigureUpdateRules(rules ldvalue.Value) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.updates = append(s.updates, rules)
}

func (s *recordingSink) UpdateMaintenance(maintenance ldvalue.Value) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.maintenance = append(s.maintenance, maintenance)
}

func (s *recordingSink) counts() (int, int, int) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.hotfixes), len(s.updates), len(s.maintenance)
}

type syncTestParams struct {
	client    *SyncClient
	requester *sharedtest.MockRequester
	sink      *recordingSink
	statesCh  chan interfaces.SyncState
	mockLog   *ldlogtest.MockLog
}

func withSyncClient(t *testing.T, hasURL bool, action func(p syncTestParams)) {
	mockLog := ldlogtest.NewMockLog()
	defer mockLog.DumpIfTestFailed(t)
	queue := dispatch.NewQueue(mockLog.Loggers)
	defer queue.Close()

	p := syncTestParams{
		requester: sharedtest.NewMockRequester(),
		sink:      &recordingSink{},
		statesCh:  make(chan interfaces.SyncState, 100),
		mockLog:   mockLog,
	}
	resolver := func() (string, bool) { return testURL, hasURL }
	p.client = NewSyncClient(p.requester, resolver, "ios", queue, p.sink, mockLog.Loggers)
	defer p.client.Close()
	p.client.SetCompletionHandler(func(state interfaces.SyncState) { p.statesCh <- state })

	action(p)
}

func requireStates(t *testing.T, ch <-chan interfaces.SyncState, states ...interfaces.SyncState) {
	t.Helper()
	for _, s := range states {
		assert.Equal(t, s, th.RequireValue(t, ch, time.Second, "timed out waiting for state %s", s))
	}
}

func TestSyncWithoutURLIsNoOp(t *testing.T) {
	withSyncClient(t, false, func(p syncTestParams) {
		p.client.Sync()

		th.AssertNoMoreValues(t, p.requester.RequestsCh, 50*time.Millisecond)
		th.AssertNoMoreValues(t, p.statesCh, 0)
		assert.Equal(t, interfaces.SyncStateUnstarted, p.client.GetStatus().State)
	})
}

func TestSuccessfulSyncAppliesAllSubDocuments(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		assert.Equal(t, testURL, th.RequireValue(t, p.requester.RequestsCh, time.Second))
		p.requester.RespondWithBody(`{"hotfixes": {"a": 42},
			"update": {"ios": [{"active": true}]},
			"maintenance": {"ios": {"active": true}}}`)

		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)

		h, u, m := p.sink.counts()
		assert.Equal(t, [3]int{1, 1, 1}, [3]int{h, u, m})
		assert.Equal(t, ldvalue.ValueMapBuild().Set("a", ldvalue.Int(42)).Build(), p.sink.hotfixes[0])
		assert.Equal(t, interfaces.SyncStateComplete, p.client.GetStatus().State)
	})
}

func TestMissingSubDocumentsAreNotForwarded(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		p.requester.RespondWithBody(`{"update": {"android": []}}`)
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)

		h, u, m := p.sink.counts()
		assert.Equal(t, [3]int{0, 0, 0}, [3]int{h, u, m})
	})
}

func TestMalformedHotfixesDoNotBlockOtherSubDocuments(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		p.requester.RespondWithBody(`{"hotfixes": "wrong", "update": {"ios": []}, "maintenance": {"ios": 5}}`)
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)

		h, u, m := p.sink.counts()
		assert.Equal(t, [3]int{0, 1, 1}, [3]int{h, u, m})
		p.mockLog.AssertMessageMatch(t, true, ldlog.Warn, "Ignoring hotfixes")
	})
}

func TestInvalidJSONStillCompletes(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		p.requester.RespondWithBody(`{"hotfixes": `)
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)

		h, u, m := p.sink.counts()
		assert.Equal(t, [3]int{0, 0, 0}, [3]int{h, u, m})
		p.mockLog.AssertMessageMatch(t, true, ldlog.Warn, "not valid JSON")
	})
}

func TestTransportFailureSetsErrorState(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		p.requester.RespondWithError(httpStatusError{Code: 503, Message: "unavailable"})
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateError)

		status := p.client.GetStatus()
		assert.Equal(t, interfaces.SyncStateError, status.State)
		assert.Equal(t, 503, status.LastError.StatusCode)
		assert.Equal(t, "unavailable", status.LastError.Message)

		h, u, m := p.sink.counts()
		assert.Equal(t, [3]int{0, 0, 0}, [3]int{h, u, m})
	})
}

func TestNetworkErrorSetsErrorState(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		p.requester.RespondWithError(errors.New("connection refused"))
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateError)
		assert.Equal(t, 0, p.client.GetStatus().LastError.StatusCode)
		p.mockLog.AssertMessageMatch(t, true, ldlog.Warn, "connection refused")
	})
}

func TestHotfixPersistenceFailureIsLogged(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.sink.hotfixErr = errors.New("disk full")
		p.client.Sync()
		p.requester.RespondWithBody(`{"hotfixes": {}}`)
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)
		p.mockLog.AssertMessageMatch(t, true, ldlog.Error, "Hotfixes were not applied: disk full")
	})
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		firstRespCh := make(chan sharedtest.MockResponse, 1)
		// The first request gets its own response channel so that it can be made to finish last.
		first := &sharedtest.MockRequester{RespCh: firstRespCh, RequestsCh: p.requester.RequestsCh}
		p.client.requester = first
		p.client.Sync()
		th.RequireValue(t, p.requester.RequestsCh, time.Second)

		p.client.requester = p.requester
		p.client.Sync()
		th.RequireValue(t, p.requester.RequestsCh, time.Second)

		p.requester.RespondWithBody(`{"hotfixes": {"gen": 2}}`)
		requireStates(t, p.statesCh, interfaces.SyncStatePending, interfaces.SyncStateComplete)

		firstRespCh <- sharedtest.MockResponse{Body: []byte(`{"hotfixes": {"gen": 1}}`)}
		th.AssertNoMoreValues(t, p.statesCh, 100*time.Millisecond)

		h, _, _ := p.sink.counts()
		require.Equal(t, 1, h)
		assert.Equal(t, ldvalue.Int(2), p.sink.hotfixes[0].Get("gen"))
	})
}

func TestOverlappingSyncsReportPendingOnce(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		th.RequireValue(t, p.requester.RequestsCh, time.Second)
		requireStates(t, p.statesCh, interfaces.SyncStatePending)
		since := p.client.GetStatus().StateSince

		p.client.Sync()
		th.RequireValue(t, p.requester.RequestsCh, time.Second)
		th.AssertNoMoreValues(t, p.statesCh, 50*time.Millisecond)
		assert.Equal(t, since, p.client.GetStatus().StateSince)

		p.requester.RespondWithBody(`{}`)
		p.requester.RespondWithBody(`{}`)
		requireStates(t, p.statesCh, interfaces.SyncStateComplete)
		th.AssertNoMoreValues(t, p.statesCh, 50*time.Millisecond)
	})
}

func TestCloseCancelsRequestInProgress(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.client.Sync()
		th.RequireValue(t, p.requester.RequestsCh, time.Second)
		requireStates(t, p.statesCh, interfaces.SyncStatePending)

		p.client.Close()
		th.AssertNoMoreValues(t, p.statesCh, 100*time.Millisecond)

		p.client.Sync()
		th.AssertNoMoreValues(t, p.requester.RequestsCh, 50*time.Millisecond)
	})
}

func TestStatusListenersAndWaitFor(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		provider := p.client.StatusProvider()
		ch := provider.AddStatusListener()
		defer provider.RemoveStatusListener(ch)

		p.client.Sync()
		p.requester.RespondWithBody(`{}`)

		assert.True(t, provider.WaitFor(interfaces.SyncStateComplete, time.Second))
		assert.Equal(t, interfaces.SyncStatePending, th.RequireValue(t, ch, time.Second).State)
		assert.Equal(t, interfaces.SyncStateComplete, th.RequireValue(t, ch, time.Second).State)
		assert.Equal(t, interfaces.SyncStateComplete, provider.GetStatus().State)
		assert.False(t, provider.WaitFor(interfaces.SyncStateError, 10*time.Millisecond))
	})
}

func TestFetchMaintenance(t *testing.T) {
	withSyncClient(t, true, func(p syncTestParams) {
		p.requester.RespondWithBody(`{"hotfixes": {"a": 1}, "maintenance": {"ios": {"active": true}}}`)
		m, found, err := p.client.FetchMaintenance(p.client.ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, ldvalue.Bool(true), m.GetByKey("active"))

		h, _, _ := p.sink.counts()
		assert.Equal(t, 0, h, "maintenance fetch must not apply other sub-documents")
	})
}

func TestFetchMaintenanceWithoutURL(t *testing.T) {
	withSyncClient(t, false, func(p syncTestParams) {
		_, found, err := p.client.FetchMaintenance(p.client.ctx)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}
