package remotesync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gametime/go-constants-sdk/interfaces"
	"github.com/gametime/go-constants-sdk/internal"
	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

const syncErrorContext = "on remote sync request"

// UpdateSink receives the sub-documents of a successful sync. Its methods are only called from the
// dispatcher.
type UpdateSink interface {
	ReplaceHotfixes(hotfixes ldvalue.ValueMap) error
	ConfigureUpdateRules(rules ldvalue.Value)
	UpdateMaintenance(maintenance ldvalue.Value)
}

// URLResolver returns the URL of the remote document, or false if none is configured.
type URLResolver func() (string, bool)

// SyncClient fetches the remote document and hands its parts to an UpdateSink.
//
// Requests run on their own goroutines. Everything that follows a response (applying the
// sub-documents, changing state, calling the completion handler) is handed to the dispatcher. Each
// Sync takes a new generation number, and a response whose generation is no longer the latest is
// dropped, so an older request that happens to finish last cannot overwrite newer state.
type SyncClient struct {
	requester   Requester
	resolveURL  URLResolver
	platform    string
	dispatcher  subsystems.Dispatcher
	sink        UpdateSink
	generation  atomic.Uint64
	handler     atomic.Pointer[func(interfaces.SyncState)]
	broadcaster *internal.Broadcaster[interfaces.SyncStatus]
	status      interfaces.SyncStatus
	statusLock  sync.Mutex
	closeLock   sync.RWMutex
	closed      bool
	ctx         context.Context
	cancel      context.CancelFunc
	loggers     ldlog.Loggers
}

// NewSyncClient creates a SyncClient in the unstarted state.
func NewSyncClient(
	requester Requester,
	resolveURL URLResolver,
	platform string,
	dispatcher subsystems.Dispatcher,
	sink UpdateSink,
	loggers ldlog.Loggers,
) *SyncClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &SyncClient{
		requester:   requester,
		resolveURL:  resolveURL,
		platform:    platform,
		dispatcher:  dispatcher,
		sink:        sink,
		broadcaster: internal.NewBroadcaster[interfaces.SyncStatus](),
		status:      interfaces.SyncStatus{State: interfaces.SyncStateUnstarted, StateSince: time.Now()},
		ctx:         ctx,
		cancel:      cancel,
		loggers:     loggers,
	}
}

// SetCompletionHandler registers a function to be called on the dispatcher after every state change.
// A transition to the state the client is already in is not reported. A nil handler unregisters the
// current one.
func (c *SyncClient) SetCompletionHandler(handler func(interfaces.SyncState)) {
	if handler == nil {
		c.handler.Store(nil)
		return
	}
	c.handler.Store(&handler)
}

// Sync starts a request for the remote document and returns immediately. If no URL is configured it
// does nothing, and the state is unchanged.
func (c *SyncClient) Sync() {
	url, ok := c.resolveURL()
	if !ok {
		c.loggers.Debug("No interceptions URL configured; not syncing")
		return
	}
	if c.ctx.Err() != nil {
		return
	}
	gen := c.generation.Add(1)
	c.dispatcher.Dispatch(func() {
		if gen == c.generation.Load() {
			c.setState(interfaces.SyncStatePending, interfaces.SyncErrorInfo{})
		}
	})
	go func() {
		body, err := c.requester.Request(c.ctx, url)
		c.dispatcher.Dispatch(func() {
			c.handleResponse(gen, body, err)
		})
	}()
}

// FetchMaintenance requests the remote document and returns only its maintenance entry. The boolean
// is false if no URL is configured.
func (c *SyncClient) FetchMaintenance(ctx context.Context) (ldvalue.Value, bool, error) {
	url, ok := c.resolveURL()
	if !ok {
		return ldvalue.Null(), false, nil
	}
	body, err := c.requester.Request(ctx, url)
	if err != nil {
		return ldvalue.Null(), true, err
	}
	m, err := ParseMaintenance(body, c.platform)
	return m, true, err
}

// Close cancels any requests in progress and closes status listener channels. State changes that are
// already queued on the dispatcher are dropped.
func (c *SyncClient) Close() {
	c.cancel()
	c.closeLock.Lock()
	defer c.closeLock.Unlock()
	if !c.closed {
		c.closed = true
		c.broadcaster.Close()
	}
}

func (c *SyncClient) handleResponse(gen uint64, body []byte, err error) {
	if c.ctx.Err() != nil {
		return
	}
	if gen != c.generation.Load() {
		c.loggers.Debug("Discarding response from a superseded sync")
		return
	}
	if err != nil {
		logRemoteError(c.loggers, err, syncErrorContext)
		errorInfo := interfaces.SyncErrorInfo{Message: err.Error(), Time: time.Now()}
		var hse httpStatusError
		if errors.As(err, &hse) {
			errorInfo.StatusCode = hse.Code
		}
		c.setState(interfaces.SyncStateError, errorInfo)
		return
	}

	doc, parseErr := ParseDocument(body, c.platform)
	if parseErr != nil {
		c.loggers.Warnf("Remote document was not valid JSON and was ignored: %s", parseErr)
	} else {
		c.apply(doc)
	}
	c.setState(interfaces.SyncStateComplete, interfaces.SyncErrorInfo{})
}

func (c *SyncClient) apply(doc Document) {
	switch doc.Hotfixes.Type() {
	case ldvalue.NullType:
	case ldvalue.ObjectType:
		if err := c.sink.ReplaceHotfixes(doc.Hotfixes.AsValueMap()); err != nil {
			c.loggers.Errorf("Hotfixes were not applied: %s", err)
		}
	default:
		c.loggers.Warnf("Ignoring hotfixes: expected an object but got %s", doc.Hotfixes.Type())
	}
	if !doc.Update.IsNull() {
		c.sink.ConfigureUpdateRules(doc.Update)
	}
	if !doc.Maintenance.IsNull() {
		c.sink.UpdateMaintenance(doc.Maintenance)
	}
}

func (c *SyncClient) setState(state interfaces.SyncState, errorInfo interfaces.SyncErrorInfo) {
	c.closeLock.RLock()
	if c.closed {
		c.closeLock.RUnlock()
		return
	}
	c.statusLock.Lock()
	if errorInfo.Message != "" {
		c.status.LastError = errorInfo
	}
	if state == c.status.State {
		// overlapping syncs each report PENDING; listeners only hear about the first
		c.statusLock.Unlock()
		c.closeLock.RUnlock()
		return
	}
	c.status.State = state
	c.status.StateSince = time.Now()
	status := c.status
	c.statusLock.Unlock()
	c.broadcaster.Broadcast(status)
	c.closeLock.RUnlock()

	if c.loggers.IsDebugEnabled() {
		c.loggers.Debugf("Sync state is now %s", state)
	}
	if h := c.handler.Load(); h != nil {
		(*h)(state)
	}
}

// GetStatus returns the current status.
func (c *SyncClient) GetStatus() interfaces.SyncStatus {
	c.statusLock.Lock()
	defer c.statusLock.Unlock()
	return c.status
}

// StatusProvider returns the public status interface.
func (c *SyncClient) StatusProvider() interfaces.SyncStatusProvider {
	return syncStatusProviderImpl{c}
}

type syncStatusProviderImpl struct {
	client *SyncClient
}

func (p syncStatusProviderImpl) GetStatus() interfaces.SyncStatus {
	return p.client.GetStatus()
}

func (p syncStatusProviderImpl) AddStatusListener() <-chan interfaces.SyncStatus {
	return p.client.broadcaster.AddListener()
}

func (p syncStatusProviderImpl) RemoveStatusListener(ch <-chan interfaces.SyncStatus) {
	p.client.broadcaster.RemoveListener(ch)
}

func (p syncStatusProviderImpl) WaitFor(desiredState interfaces.SyncState, timeout time.Duration) bool {
	p.client.closeLock.RLock()
	closed := p.client.closed
	p.client.closeLock.RUnlock()
	if closed {
		return p.client.GetStatus().State == desiredState
	}
	ch := p.client.broadcaster.AddListener()
	defer p.client.broadcaster.RemoveListener(ch)

	if p.client.GetStatus().State == desiredState {
		return true
	}
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}
	for {
		select {
		case status, ok := <-ch:
			if !ok {
				return false
			}
			if status.State == desiredState {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
