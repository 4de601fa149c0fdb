package remotesync

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gametime/go-constants-sdk/subsystems"

	"github.com/launchdarkly/go-sdk-common/v3/ldlog"
	"golang.org/x/exp/maps"
)

// Requester fetches the raw remote document. It exists so that the sync client and the maintenance
// poller can be tested without an HTTP server.
type Requester interface {
	Request(ctx context.Context, url string) ([]byte, error)
}

// httpRequester issues a single uncached GET per request. The response is time-sensitive, so the
// client must never use a caching transport and asks intermediaries not to serve a cached copy.
type httpRequester struct {
	httpClient *http.Client
	headers    http.Header
	loggers    ldlog.Loggers
}

// NewHTTPRequester creates the standard Requester from the client's HTTP configuration.
func NewHTTPRequester(context subsystems.ClientContext) Requester {
	return &httpRequester{
		httpClient: context.GetHTTP().CreateHTTPClient(),
		headers:    context.GetHTTP().DefaultHeaders,
		loggers:    context.GetLogging().Loggers,
	}
}

func (r *httpRequester) Request(ctx context.Context, url string) ([]byte, error) {
	if r.loggers.IsDebugEnabled() {
		r.loggers.Debugf("Requesting remote document from %s", url)
	}
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf(
			"unable to create a sync request; this is not a network problem, most likely a bad interceptions URL: %w",
			reqErr,
		)
	}
	if r.headers != nil {
		req.Header = maps.Clone(r.headers)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	res, resErr := r.httpClient.Do(req)
	if resErr != nil {
		return nil, resErr
	}
	defer func() {
		_, _ = io.ReadAll(res.Body)
		_ = res.Body.Close()
	}()

	if err := checkForHTTPError(res.StatusCode, req.URL.String()); err != nil {
		return nil, err
	}
	return io.ReadAll(res.Body)
}
