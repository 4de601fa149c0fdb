package sharedtest

import (
	"context"
)

// MockRequester is a test implementation of remotesync.Requester. Each request reports its URL on
// RequestsCh and then blocks until a response is pushed to RespCh or the context is cancelled.
type MockRequester struct {
	RespCh     chan MockResponse
	RequestsCh chan string
}

// MockResponse is a response to be returned by MockRequester.
type MockResponse struct {
	Body []byte
	Err  error
}

// NewMockRequester creates a MockRequester.
func NewMockRequester() *MockRequester {
	return &MockRequester{
		RespCh:     make(chan MockResponse, 100),
		RequestsCh: make(chan string, 100),
	}
}

// Request implements remotesync.Requester.
func (r *MockRequester) Request(ctx context.Context, url string) ([]byte, error) {
	r.RequestsCh <- url
	select {
	case resp := <-r.RespCh:
		return resp.Body, resp.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RespondWithBody queues a successful response.
func (r *MockRequester) RespondWithBody(body string) {
	r.RespCh <- MockResponse{Body: []byte(body)}
}

// RespondWithError queues a failed response.
func (r *MockRequester) RespondWithError(err error) {
	r.RespCh <- MockResponse{Err: err}
}
